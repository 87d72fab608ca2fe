package reorder

import (
	"context"

	pool "github.com/jolestar/go-commons-pool"

	"github.com/npillmayer/hebvis/segment"
)

// A workspace holds the scratch slices for converting one line.
// Lines are short-lived and plentiful; to avoid allocating the slices for
// every line we pool workspaces.
type workspace struct {
	tokens   []segment.Token
	segments []segment.Segment
	texts    []string
}

type workspacePool struct {
	opool *pool.ObjectPool
	ctx   context.Context
}

var globalWorkspacePool *workspacePool

func init() {
	globalWorkspacePool = &workspacePool{}
	factory := pool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			return &workspace{}, nil
		})
	globalWorkspacePool.ctx = context.Background()
	config := pool.NewDefaultPoolConfig()
	config.MaxTotal = -1 // infinity
	config.BlockWhenExhausted = false
	globalWorkspacePool.opool = pool.NewObjectPool(globalWorkspacePool.ctx, factory, config)
}

func borrowWorkspace() *workspace {
	o, err := globalWorkspacePool.opool.BorrowObject(globalWorkspacePool.ctx)
	if err != nil {
		T().Errorf("cannot borrow workspace from pool: %v", err)
		return &workspace{}
	}
	return o.(*workspace)
}

// originalTexts fills the texts slice with the text of every token.
func (ws *workspace) originalTexts() []string {
	texts := ws.texts[:0]
	for _, tok := range ws.tokens {
		texts = append(texts, tok.Text)
	}
	return texts
}

// Clears the workspace and puts it back into the pool.
// Slices keep their capacity, but must not keep the line alive.
func (ws *workspace) release() {
	clear(ws.tokens)
	clear(ws.segments)
	clear(ws.texts)
	ws.tokens = ws.tokens[:0]
	ws.segments = ws.segments[:0]
	ws.texts = ws.texts[:0]
	_ = globalWorkspacePool.opool.ReturnObject(globalWorkspacePool.ctx, ws)
}
