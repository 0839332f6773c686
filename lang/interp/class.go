package interp

import (
	"fmt"
	"sort"

	"github.com/dolthub/swiss"
	"golang.org/x/exp/maps"
)

// Class is a runtime class value: a name, an optional superclass, and its
// own methods. Instances are created by calling the class.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

var (
	_ Value    = (*Class)(nil)
	_ Callable = (*Class)(nil)
)

func (c *Class) String() string { return c.Name }
func (c *Class) Type() string   { return "class" }

// FindMethod looks up name on c, falling back to the superclass chain.
func (c *Class) FindMethod(name string) (*Function, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

// MethodNames returns the class's own method names (not inherited ones),
// sorted, as a debugging helper. The "undefined property" runtime error does
// not list them.
func (c *Class) MethodNames() []string {
	names := maps.Keys(c.Methods)
	sort.Strings(names)
	return names
}

// Arity returns the arity of the "init" method found on the class or its
// superclass chain, or 0 if there is none (a bare "Class()" call then takes
// no arguments).
func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Call constructs a new Instance and, if the class (or a superclass)
// declares an "init" method, runs it against the new instance's fields
// before returning it.
func (c *Class) Call(in *Interpreter, args []Value) (Value, error) {
	instance := &Instance{Class: c, fields: swiss.NewMap[string, Value](8)}
	if init, ok := c.FindMethod("init"); ok {
		if _, err := init.Bind(instance).Call(in, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Instance is a runtime instance of a Class: its own fields plus its
// class's methods.
type Instance struct {
	Class  *Class
	fields *swiss.Map[string, Value]
}

var (
	_ Value       = (*Instance)(nil)
	_ HasAttrs    = (*Instance)(nil)
	_ HasSetField = (*Instance)(nil)
)

func (i *Instance) String() string { return fmt.Sprintf("%s instance", i.Class.Name) }
func (i *Instance) Type() string   { return i.Class.Name }

// Attr resolves a property access: own fields shadow class methods, which
// are bound to the instance lazily on each access.
func (i *Instance) Attr(name string) (Value, bool) {
	if v, ok := i.fields.Get(name); ok {
		return v, true
	}
	if m, ok := i.Class.FindMethod(name); ok {
		return m.Bind(i), true
	}
	return nil, false
}

func (i *Instance) SetField(name string, val Value) {
	i.fields.Put(name, val)
}
