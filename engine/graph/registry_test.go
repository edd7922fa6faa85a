package graph

import (
	"errors"
	"image/color"
	"reflect"
	"testing"
)

func TestRegistryBuiltins(t *testing.T) {
	r := NewRegistry()
	want := []string{"AmbientLight", "Group", "Model", "Part", "PerspectiveCamera", "Scene"}
	if got := r.ListRegistered(); !reflect.DeepEqual(got, want) {
		t.Errorf("ListRegistered = %v, want %v", got, want)
	}
	for _, name := range want {
		obj, err := r.Create(name)
		if err != nil {
			t.Fatalf("Create(%q) = %v", name, err)
		}
		if obj.GetClassName() != name {
			t.Errorf("Create(%q) class = %q", name, obj.GetClassName())
		}
		if len(obj.GetChildren()) != 0 {
			t.Errorf("Create(%q) has children", name)
		}
	}
}

func TestRegistryUnknownClass(t *testing.T) {
	_, err := NewRegistry().Create("Nope")
	if !errors.Is(err, ErrUnknownClass) {
		t.Errorf("Create(Nope) = %v, want ErrUnknownClass", err)
	}
}

func TestRegistryConstructorArgs(t *testing.T) {
	r := NewRegistry()

	obj, err := r.Create("PerspectiveCamera", 75, 16.0/9.0, 0.5, 500)
	if err != nil {
		t.Fatal(err)
	}
	cam := obj.(*PerspectiveCamera)
	if cam.Fov != 75 || cam.Near != 0.5 || cam.Far != 500 {
		t.Errorf("camera = %+v", cam)
	}

	obj, err = r.Create("AmbientLight", "white", 0.25)
	if err != nil {
		t.Fatal(err)
	}
	light := obj.(*AmbientLight)
	if light.Color != (color.RGBA{255, 255, 255, 255}) || light.Intensity != 0.25 {
		t.Errorf("light = %+v", light)
	}

	if _, err := r.Create("Group", 1); !errors.Is(err, ErrTooManyArgs) {
		t.Errorf("Create(Group, 1) = %v, want ErrTooManyArgs", err)
	}
	if _, err := r.Create("Part", 7); !errors.Is(err, ErrAttrType) {
		t.Errorf("Create(Part, 7) = %v, want ErrAttrType", err)
	}
}

func TestRegisterClass(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterClass("", nil); err == nil {
		t.Error("RegisterClass with empty name should fail")
	}
	err := r.RegisterClass("Rig", func(args ...any) (Object, error) {
		g := NewGroup()
		g.SetName("rig")
		return g, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	obj, err := r.Create("Rig")
	if err != nil || obj.GetName() != "rig" {
		t.Errorf("Create(Rig) = %v, %v", obj, err)
	}

	_ = r.RegisterClass("Broken", func(args ...any) (Object, error) { return nil, nil })
	if _, err := r.Create("Broken"); err == nil {
		t.Error("nil object from constructor should be an error")
	}

	// registries do not share state
	if _, err := NewRegistry().Create("Rig"); !errors.Is(err, ErrUnknownClass) {
		t.Errorf("fresh registry Create(Rig) = %v", err)
	}
}
