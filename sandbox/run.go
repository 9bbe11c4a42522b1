package sandbox

// RunFunc invokes fn with a fresh function context. A returned error is
// reported through Panic, so an invocation either completes or aborts. The
// abort is recovered here and returned as *Abort.
func RunFunc(host Host, fn func(ctx ScSandboxFunc) error) error {
	ctx := NewScSandboxFunc(host)
	return run(ctx.ScSandbox, func() error { return fn(ctx) })
}

// RunView is RunFunc for view functions.
func RunView(host Host, fn func(ctx ScSandboxView) error) error {
	ctx := NewScSandboxView(host)
	return run(ctx.ScSandbox, func() error { return fn(ctx) })
}

func run(sandbox ScSandbox, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			abort, ok := r.(*Abort)
			if !ok {
				panic(r)
			}
			err = abort
		}
	}()

	if err := fn(); err != nil {
		sandbox.Panic(err.Error())
	}
	return nil
}
