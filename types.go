package rdotnet

// Handle identifies a foreign heap object. In a live interpreter it is the
// object's SEXP address; test engines may use opaque indexes. Handle(0) is
// the null handle.
type Handle uintptr

// ExprType is the interpreter's type tag for a heap object. Values follow
// the R SEXPTYPE numbering so tags read from a live engine map directly.
type ExprType int32

const (
	Null            ExprType = 0
	Symbol          ExprType = 1
	LogicalVector   ExprType = 10
	IntegerVector   ExprType = 13
	RealVector      ExprType = 14
	ComplexVector   ExprType = 15
	CharacterVector ExprType = 16
	List            ExprType = 19
)

func (t ExprType) String() string {
	switch t {
	case Null:
		return "null"
	case Symbol:
		return "symbol"
	case LogicalVector:
		return "logical"
	case IntegerVector:
		return "integer"
	case RealVector:
		return "real"
	case ComplexVector:
		return "complex"
	case CharacterVector:
		return "character"
	case List:
		return "list"
	default:
		return "unknown"
	}
}

// Memory reads and writes foreign buffer bytes. Addresses are 64-bit so the
// same interface covers raw process pointers and linear-memory offsets.
type Memory interface {
	Read(addr uint64, length uint32) ([]byte, error)
	Write(addr uint64, data []byte) error
}

// ProtectToken is the receipt returned by Protect; Unprotect consumes it.
type ProtectToken uint64

// Protector is the foreign garbage collector's protection capability.
// While a token is outstanding the protected object is excluded from
// relocation and collection.
type Protector interface {
	Protect(h Handle) (ProtectToken, error)
	Unprotect(tok ProtectToken)
}

// Object describes a foreign heap object as reported by the session layer.
// The data pointer is valid only while the object is protected or otherwise
// rooted by the session.
type Object interface {
	Handle() Handle
	Type() ExprType
	DataPointer() uint64
}

// VectorObject is a foreign object with one-dimensional shape metadata.
type VectorObject interface {
	Object
	Len() int
}

// MatrixObject is a foreign object with two-dimensional shape metadata.
// Element storage is column-major, matching the interpreter's convention.
type MatrixObject interface {
	Object
	Rows() int
	Cols() int
}
