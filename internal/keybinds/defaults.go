package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerSidebarBindings(r)
	registerResponseBindings(r)
	registerInputBindings(r)

	return r
}

func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
	r.Register(ContextGlobal, "q", ActionQuit)
	r.Register(ContextGlobal, "?", ActionOpenHelp)
	r.Register(ContextGlobal, "tab", ActionSwitchFocus)
	r.RegisterMultiple(ContextGlobal, []string{"s", "ctrl+s"}, ActionSend)
	r.Register(ContextGlobal, "n", ActionNewRequest)
	r.Register(ContextGlobal, "m", ActionCycleMethod)
	r.Register(ContextGlobal, "u", ActionEditURL)
	r.Register(ContextGlobal, "b", ActionEditBody)
	r.Register(ContextGlobal, "h", ActionTogglePane)
	r.Register(ContextGlobal, "y", ActionCopyToClipboard)
	r.Register(ContextGlobal, "H", ActionToggleHeaders)
	r.Register(ContextGlobal, "f", ActionFilterResponse)
	r.Register(ContextGlobal, "F", ActionClearFilter)
	r.Register(ContextGlobal, "/", ActionOpenSearch)
}

func registerSidebarBindings(r *Registry) {
	r.RegisterMultiple(ContextSidebar, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextSidebar, []string{"down", "j"}, ActionNavigateDown)
	r.RegisterMultiple(ContextSidebar, []string{"gg", "home"}, ActionGoToTop)
	r.RegisterMultiple(ContextSidebar, []string{"G", "end"}, ActionGoToBottom)
	r.Register(ContextSidebar, "enter", ActionSelect)
	r.Register(ContextSidebar, "e", ActionEditTitle)
}

func registerResponseBindings(r *Registry) {
	r.RegisterMultiple(ContextResponse, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextResponse, []string{"down", "j"}, ActionNavigateDown)
	r.RegisterMultiple(ContextResponse, []string{"pgup", "ctrl+u"}, ActionPageUp)
	r.RegisterMultiple(ContextResponse, []string{"pgdown", "ctrl+d"}, ActionPageDown)
	r.RegisterMultiple(ContextResponse, []string{"gg", "home"}, ActionGoToTop)
	r.RegisterMultiple(ContextResponse, []string{"G", "end"}, ActionGoToBottom)
}

func registerInputBindings(r *Registry) {
	r.Register(ContextInput, "enter", ActionTextSubmit)
	r.Register(ContextInput, "esc", ActionTextCancel)
	r.Register(ContextInput, "tab", ActionTextBlur)
	r.Register(ContextInput, "ctrl+c", ActionQuitForce)
}
