package component

// InputScript drives the Input component from a tengo script instead of a
// device.
type InputScript struct {
	Path   string
	Source []byte
}

var InputScriptComponent = NewComponent[InputScript]()
