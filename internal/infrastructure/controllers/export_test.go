package controllers

// SetEnviron replaces the process environment reader.
func (it *UpdateController) SetEnviron(environ func() []string) {
	it.environ = environ
}
