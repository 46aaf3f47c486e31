package tensor

// Array is the minimal surface the view machinery needs from an
// N-dimensional array: access to its raw header. *RawTensor is the canonical
// base implementation; wrapper types satisfy it by exposing their header.
type Array interface {
	Raw() *RawTensor
}

// ViewFinalizer is the capability interface for specialized wrapper types
// that want views derived from them minted as the same concrete type.
//
// FinalizeView receives the freshly constructed raw header of the view and
// returns it wrapped; the receiver acts as the template whose invariants the
// implementation restores. The view machinery invokes the hook only when
// subtype propagation is requested, and falls back to returning the bare
// header for sources that do not implement it.
type ViewFinalizer interface {
	Array
	FinalizeView(raw *RawTensor) Array
}
