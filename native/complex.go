package native

import (
	"encoding/binary"
	"math"
	"strconv"
)

// Size is the byte width of one packed complex element: two consecutive
// IEEE-754 doubles, real part first, in the host's native byte order. This
// matches the interpreter's Rcomplex struct exactly; no conversion is
// performed beyond reinterpretation.
const Size = 16

// Complex is a packed complex number. Field order is fixed: real first.
type Complex struct {
	Real float64
	Imag float64
}

var (
	// Zero is the additive identity 0+0i.
	Zero = Complex{}
	// Identity is the multiplicative identity 1+0i.
	Identity = Complex{Real: 1}
	// I is the imaginary unit 0+1i.
	I = Complex{Imag: 1}
)

// NaN returns the complex not-a-number value NaN+NaNi.
func NaN() Complex {
	return Complex{Real: math.NaN(), Imag: math.NaN()}
}

// Inf returns the complex infinity +Inf+Infi.
func Inf() Complex {
	return Complex{Real: math.Inf(1), Imag: math.Inf(1)}
}

// FromComplex128 converts a built-in complex128, which has the same layout.
func FromComplex128(z complex128) Complex {
	return Complex{Real: real(z), Imag: imag(z)}
}

// Complex128 converts to the built-in complex128.
func (z Complex) Complex128() complex128 {
	return complex(z.Real, z.Imag)
}

// IsReal reports whether the imaginary component is zero.
func (z Complex) IsReal() bool {
	return z.Imag == 0
}

// IsPurelyImaginary reports whether the real component is zero and the
// imaginary component is not.
func (z Complex) IsPurelyImaginary() bool {
	return z.Real == 0 && z.Imag != 0
}

// IsNaN reports whether either component is NaN.
func (z Complex) IsNaN() bool {
	return math.IsNaN(z.Real) || math.IsNaN(z.Imag)
}

// IsInf reports whether either component is infinite.
func (z Complex) IsInf() bool {
	return math.IsInf(z.Real, 0) || math.IsInf(z.Imag, 0)
}

func (z Complex) isFinite() bool {
	return !z.IsNaN() && !z.IsInf()
}

// Abs returns the modulus |z|.
func (z Complex) Abs() float64 {
	return math.Hypot(z.Real, z.Imag)
}

// Neg returns -z.
func (z Complex) Neg() Complex {
	return Complex{Real: -z.Real, Imag: -z.Imag}
}

// Conj returns the complex conjugate.
func (z Complex) Conj() Complex {
	return Complex{Real: z.Real, Imag: -z.Imag}
}

// Add returns z+w, or NaN if either operand is NaN.
func (z Complex) Add(w Complex) Complex {
	if z.IsNaN() || w.IsNaN() {
		return NaN()
	}
	return Complex{Real: z.Real + w.Real, Imag: z.Imag + w.Imag}
}

// Sub returns z-w, or NaN if either operand is NaN.
func (z Complex) Sub(w Complex) Complex {
	if z.IsNaN() || w.IsNaN() {
		return NaN()
	}
	return Complex{Real: z.Real - w.Real, Imag: z.Imag - w.Imag}
}

// Mul returns z*w, or NaN if either operand is NaN.
func (z Complex) Mul(w Complex) Complex {
	if z.IsNaN() || w.IsNaN() {
		return NaN()
	}
	return Complex{
		Real: z.Real*w.Real - z.Imag*w.Imag,
		Imag: z.Real*w.Imag + z.Imag*w.Real,
	}
}

// Div returns z/w. The special cases are checked in a fixed order that
// pins down behavior at the domain boundaries where raw IEEE-754
// arithmetic would yield inconsistent NaN/Inf results: an exactly-zero
// divisor yields NaN before the general formula runs, and a finite
// dividend over an infinite divisor yields Zero before NaN propagation.
func (z Complex) Div(w Complex) Complex {
	if w.Real == 0 && w.Imag == 0 {
		return NaN()
	}
	if z.isFinite() && w.IsInf() {
		return Zero
	}
	d := w.Real*w.Real + w.Imag*w.Imag
	return Complex{
		Real: (z.Real*w.Real + z.Imag*w.Imag) / d,
		Imag: (z.Imag*w.Real - z.Real*w.Imag) / d,
	}
}

// Equal reports component-wise equality, except that any two NaN-containing
// values compare equal (propagating-NaN semantics).
func (z Complex) Equal(w Complex) bool {
	if z.IsNaN() && w.IsNaN() {
		return true
	}
	return z.Real == w.Real && z.Imag == w.Imag
}

// nanHash is the fixed hash for every NaN-containing value, keeping Hash
// consistent with Equal's propagating-NaN rule.
const nanHash uint64 = 0x7ff8000000000000

// Hash returns a hash consistent with Equal: equal values hash identically,
// including negative zero and all NaN-containing values.
func (z Complex) Hash() uint64 {
	if z.IsNaN() {
		return nanHash
	}
	r, i := z.Real, z.Imag
	if r == 0 {
		r = 0 // canonicalize -0
	}
	if i == 0 {
		i = 0
	}
	const offset64 = 14695981039346656037
	const prime64 = 1099511628211
	h := uint64(offset64)
	h = (h ^ math.Float64bits(r)) * prime64
	h = (h ^ math.Float64bits(i)) * prime64
	return h
}

// PutBytes writes the 16-byte packed representation into dst, which must be
// at least Size bytes long.
func (z Complex) PutBytes(dst []byte) {
	_ = dst[Size-1]
	binary.NativeEndian.PutUint64(dst[0:8], math.Float64bits(z.Real))
	binary.NativeEndian.PutUint64(dst[8:16], math.Float64bits(z.Imag))
}

// FromBytes reinterprets the first 16 bytes of src: bytes 0-7 as the real
// component, 8-15 as the imaginary component.
func FromBytes(src []byte) Complex {
	_ = src[Size-1]
	return Complex{
		Real: math.Float64frombits(binary.NativeEndian.Uint64(src[0:8])),
		Imag: math.Float64frombits(binary.NativeEndian.Uint64(src[8:16])),
	}
}

// String renders the value as a+bi.
func (z Complex) String() string {
	re := strconv.FormatFloat(z.Real, 'g', -1, 64)
	im := strconv.FormatFloat(z.Imag, 'g', -1, 64)
	if im[0] != '-' && im[0] != '+' {
		im = "+" + im
	}
	return re + im + "i"
}
