package sempcfg

import (
	"github.com/reoring/sempcfg/command"
	"github.com/reoring/sempcfg/spec"
)

// Mode selects which command sequence Plan produces.
type Mode uint8

const (
	ModeCreate Mode = iota
	ModeDelete
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Plan lowers every child of root into a fresh command list. On error the
// partial list is discarded.
func Plan(root *Object, mode Mode) (*command.List, error) {
	l := command.NewList()
	var err error
	switch mode {
	case ModeDelete:
		err = root.DeleteCommands(l)
	default:
		err = root.CreateCommands(l)
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

// CreateCommands generates create commands for every child of o, treating o
// as the synthetic root at path "".
func (o *Object) CreateCommands(sink command.Sink) error {
	return o.ForEachChild(func(c *Object) error {
		return c.GenerateCreateCommands(sink, "")
	})
}

// DeleteCommands is the delete counterpart of CreateCommands.
func (o *Object) DeleteCommands(sink command.Sink) error {
	return o.ForEachChild(func(c *Object) error {
		return c.GenerateDeleteCommands(sink, "")
	})
}

// GenerateCreateCommands appends the commands creating o and its subtree
// under parentPath. A default object is reconfigured with PATCH instead of
// created. When o must be disabled around child changes, it is created
// disabled and enabled again after its children.
func (o *Object) GenerateCreateCommands(sink command.Sink, parentPath string) error {
	id, err := o.ObjectID()
	if err != nil {
		return err
	}
	isDefault, err := o.IsDefault()
	if err != nil {
		return err
	}
	collectionPath := parentPath + "/" + o.collectionName
	objectPath := collectionPath + "/" + id
	protect := o.RequiresDisable()

	payload, err := o.render(renderOpt{attributesOnly: true, forceDisabled: protect})
	if err != nil {
		return err
	}
	if isDefault {
		sink.Append(command.PATCH, objectPath, payload)
	} else {
		sink.Append(command.POST, collectionPath, payload)
	}

	if err := o.ForEachChild(func(c *Object) error {
		return c.GenerateCreateCommands(sink, objectPath)
	}); err != nil {
		return err
	}

	if protect {
		sink.Append(command.PATCH, objectPath, enabledPayload(true))
	}
	return nil
}

// GenerateDeleteCommands appends the commands removing o and its subtree
// under parentPath. A default object cannot be deleted, so it is disabled
// instead when its type has an "enabled" attribute. At most one disable
// PATCH is emitted for o.
func (o *Object) GenerateDeleteCommands(sink command.Sink, parentPath string) error {
	id, err := o.ObjectID()
	if err != nil {
		return err
	}
	isDefault, err := o.IsDefault()
	if err != nil {
		return err
	}
	e, err := o.entry()
	if err != nil {
		return err
	}
	objectPath := parentPath + "/" + o.collectionName + "/" + id
	protect := o.RequiresDisable()

	if protect {
		sink.Append(command.PATCH, objectPath, enabledPayload(false))
	}

	if err := o.ForEachChild(func(c *Object) error {
		return c.GenerateDeleteCommands(sink, objectPath)
	}); err != nil {
		return err
	}

	switch {
	case !isDefault:
		sink.Append(command.DELETE, objectPath, "")
	case !protect && e.Has(spec.All, spec.EnabledAttribute):
		sink.Append(command.PATCH, objectPath, enabledPayload(false))
	}
	return nil
}
