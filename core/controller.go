package core

// Controller is a DataObject variant tagged "Controller". It adds no
// behavior of its own.
type Controller struct {
	*DataObject
}

var _ Object = (*Controller)(nil)

// NewController returns a Controller holding data.
func NewController(data map[string]any, optFns ...func(o *Options)) *Controller {
	return &Controller{DataObject: NewVariant(ControllerName, data, optFns...)}
}
