package module

import (
	"errors"
	"reflect"
	"testing"

	"github.com/san-kum/quantsim/internal/quantity"
)

type stubDescriptor struct {
	name    string
	kind    Kind
	inputs  []string
	outputs []string
	fixed   bool
}

func (d stubDescriptor) Name() string        { return d.name }
func (d stubDescriptor) Kind() Kind          { return d.kind }
func (d stubDescriptor) Inputs() []string    { return d.inputs }
func (d stubDescriptor) Outputs() []string   { return d.outputs }
func (d stubDescriptor) FixedStepOnly() bool { return d.fixed }

func (d stubDescriptor) New(in, out quantity.Store) Module {
	return &stubModule{in: in, out: out, outputs: d.outputs}
}

// stubModule copies "x" into every declared output, accumulating.
type stubModule struct {
	in, out quantity.Store
	outputs []string
}

func (m *stubModule) Run() error {
	x, err := m.in.Get("x")
	if err != nil {
		return err
	}
	for _, name := range m.outputs {
		m.out.Add(name, x)
	}
	return nil
}

func testRegistry() *Registry {
	return NewRegistry("testing",
		stubDescriptor{name: "beta", kind: Direct, inputs: []string{"x"}, outputs: []string{"y"}},
		stubDescriptor{name: "alpha", kind: Differential, inputs: []string{"x"}, outputs: []string{"z"}},
	)
}

func TestRegistryRetrieve(t *testing.T) {
	r := testRegistry()

	d, err := r.Retrieve("alpha")
	if err != nil {
		t.Fatalf("Retrieve(alpha) returned error: %v", err)
	}
	if d.Name() != "alpha" || d.Kind() != Differential {
		t.Errorf("Retrieve(alpha) = %s/%s", d.Name(), d.Kind())
	}

	_, err = r.Retrieve("Alpha")
	if err == nil {
		t.Fatal("Retrieve should be exact-match, Alpha must not resolve")
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error should be *NotFoundError, got %T", err)
	}
	if nf.Module != "Alpha" || nf.Library != "testing" {
		t.Errorf("NotFoundError = %+v, want Module=Alpha Library=testing", nf)
	}
}

func TestRegistryModulesSorted(t *testing.T) {
	r := testRegistry()

	got := r.Modules()
	want := []string{"alpha", "beta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Modules = %v, want %v", got, want)
	}
}

func TestRegistryQuantities(t *testing.T) {
	r := testRegistry()

	got := r.Quantities()
	want := []QuantityInfo{
		{Module: "alpha", Quantity: "x", Direction: "input"},
		{Module: "alpha", Quantity: "z", Direction: "output"},
		{Module: "beta", Quantity: "x", Direction: "input"},
		{Module: "beta", Quantity: "y", Direction: "output"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Quantities = %v, want %v", got, want)
	}
}

func TestRegistryDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewRegistry should panic on duplicate descriptor names")
		}
	}()
	NewRegistry("testing",
		stubDescriptor{name: "alpha"},
		stubDescriptor{name: "alpha"},
	)
}
