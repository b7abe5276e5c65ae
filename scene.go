package engine

// Scene is the set of hooks a demo implements. The App calls Init once,
// then Update and Render every frame, then Shutdown once.
type Scene interface {
	Init(ctx *Context) error
	Update(ctx *Context, dt float32, events []Event)
	Render(ctx *Context)
	Shutdown(ctx *Context)
}

// SceneFuncs adapts plain functions to Scene. Nil fields are skipped.
type SceneFuncs struct {
	InitFunc     func(ctx *Context) error
	UpdateFunc   func(ctx *Context, dt float32, events []Event)
	RenderFunc   func(ctx *Context)
	ShutdownFunc func(ctx *Context)
}

func (s SceneFuncs) Init(ctx *Context) error {
	if s.InitFunc == nil {
		return nil
	}
	return s.InitFunc(ctx)
}

func (s SceneFuncs) Update(ctx *Context, dt float32, events []Event) {
	if s.UpdateFunc != nil {
		s.UpdateFunc(ctx, dt, events)
	}
}

func (s SceneFuncs) Render(ctx *Context) {
	if s.RenderFunc != nil {
		s.RenderFunc(ctx)
	}
}

func (s SceneFuncs) Shutdown(ctx *Context) {
	if s.ShutdownFunc != nil {
		s.ShutdownFunc(ctx)
	}
}
