// SPDX-License-Identifier: MIT

// Package algebra - Context parameters and their validation.
//
// Validation runs in two stages:
//   - field tags (go-playground/validator): ranges that do not depend on Kind;
//   - a struct-level rule per Kind: dimensions, modulus, primality, degree,
//     defining polynomial, precision. Field degree and matrix size are
//     bounded so hostile records fail fast.
//
// Every failure maps to ErrInvalidParameters with the offending fields listed.
package algebra

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/katalvlaran/lvnum/backend"
)

// Kind is the structure described by a Context.
type Kind uint8

// Context kinds.
const (
	KindIntMod      Kind = iota + 1 // Z/nZ
	KindPolyRing                    // univariate polynomials over Base
	KindMatrixSpace                 // rows×cols matrices over Base
	KindFiniteField                 // GF(p^k)
	KindNumberField                 // Q[x]/(f)
	KindPrecision                   // working precision for balls
)

// String names the kind.
func (k Kind) String() string {
	switch k {
	case KindIntMod:
		return "intmod"
	case KindPolyRing:
		return "poly"
	case KindMatrixSpace:
		return "matrix"
	case KindFiniteField:
		return "finite-field"
	case KindNumberField:
		return "number-field"
	case KindPrecision:
		return "precision"
	default:
		return "unknown"
	}
}

// Base is the coefficient type of polynomial rings and matrix spaces.
type Base uint8

// Coefficient bases.
const (
	BaseNone Base = iota
	BaseInteger
	BaseRational
	BaseIntMod
	BaseFiniteField
)

func (b Base) String() string {
	switch b {
	case BaseInteger:
		return "Integer Ring"
	case BaseRational:
		return "Rational Field"
	case BaseIntMod:
		return "Integers mod n"
	case BaseFiniteField:
		return "Finite Field"
	default:
		return "none"
	}
}

// Precision bounds in bits.
const (
	MinPrecision = 2
	MaxPrecision = 1 << 24
)

// Size bounds. Finite fields above MaxFieldDegree would spend unbounded
// time in the modulus search; matrix spaces are limited to MaxMatrixEntries
// entries.
const (
	MaxFieldDegree   = 1 << 10
	MaxMatrixEntries = 1 << 24
)

// Default display variables.
const (
	DefaultPolyVar   = "x"
	DefaultFieldVar  = "o"
	DefaultNumberVar = "a"
)

// Params describes a Context. Var is a display parameter; every other field
// is identity-defining.
type Params struct {
	Kind      Kind       `validate:"required,min=1,max=6"`
	Base      Base       `validate:"max=4"`
	Var       string     `validate:"omitempty,varname"`
	Rows      int        `validate:"gte=0"`
	Cols      int        `validate:"gte=0"`
	Degree    int        `validate:"gte=0"`
	Precision uint       `validate:"omitempty,min=2,max=16777216"`
	Modulus   *big.Int   `validate:"-"`
	Defining  []*big.Rat `validate:"-"`
}

// clone deep-copies p.
func (p Params) clone() Params {
	out := p
	if p.Modulus != nil {
		out.Modulus = new(big.Int).Set(p.Modulus)
	}
	if p.Defining != nil {
		out.Defining = make([]*big.Rat, len(p.Defining))
		for i, q := range p.Defining {
			if q != nil {
				out.Defining[i] = new(big.Rat).Set(q)
			}
		}
	}

	return out
}

// withDefaults fills the display variable for kinds that print one.
func (p Params) withDefaults() Params {
	if p.Var != "" {
		return p
	}
	switch p.Kind {
	case KindPolyRing:
		p.Var = DefaultPolyVar
	case KindFiniteField:
		p.Var = DefaultFieldVar
	case KindNumberField:
		p.Var = DefaultNumberVar
	}

	return p
}

var varName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("varname", func(fl validator.FieldLevel) bool {
		return varName.MatchString(fl.Field().String())
	})
	v.RegisterStructValidation(paramsRules, Params{})

	return v
}

// paramsRules holds the Kind-dependent rules.
func paramsRules(sl validator.StructLevel) {
	p := sl.Current().Interface().(Params)
	needModulus := func() {
		if p.Modulus == nil || p.Modulus.Cmp(big.NewInt(2)) < 0 {
			sl.ReportError(p.Modulus, "Modulus", "Modulus", "modulus", ">=2")
		}
	}
	// needField checks the characteristic and degree of GF(p^k), the kind
	// itself or the coefficients of a ring over it.
	needField := func() {
		if p.Modulus == nil || p.Modulus.Cmp(big.NewInt(2)) < 0 || !p.Modulus.ProbablyPrime(20) {
			sl.ReportError(p.Modulus, "Modulus", "Modulus", "prime", "")
		}
		if p.Degree < 1 {
			sl.ReportError(p.Degree, "Degree", "Degree", "min", "1")
		}
		if p.Degree > MaxFieldDegree {
			sl.ReportError(p.Degree, "Degree", "Degree", "max", "1024")
		}
	}
	needNoBase := func() {
		if p.Base != BaseNone {
			sl.ReportError(p.Base, "Base", "Base", "base", "none")
		}
	}
	needVar := func() {
		if p.Var == "" {
			sl.ReportError(p.Var, "Var", "Var", "required", "")
		}
	}
	switch p.Kind {
	case KindIntMod:
		needNoBase()
		needModulus()
	case KindPolyRing:
		needVar()
		switch p.Base {
		case BaseInteger, BaseRational:
		case BaseIntMod:
			needModulus()
		case BaseFiniteField:
			needField()
			// Coefficients print in the field generator.
			if p.Var == DefaultFieldVar {
				sl.ReportError(p.Var, "Var", "Var", "excludes", DefaultFieldVar)
			}
		default:
			sl.ReportError(p.Base, "Base", "Base", "base", "coefficient")
		}
	case KindMatrixSpace:
		if p.Rows < 1 {
			sl.ReportError(p.Rows, "Rows", "Rows", "min", "1")
		}
		if p.Cols < 1 {
			sl.ReportError(p.Cols, "Cols", "Cols", "min", "1")
		}
		if p.Rows > 0 && p.Cols > 0 && int64(p.Rows)*int64(p.Cols) > MaxMatrixEntries {
			sl.ReportError(p.Rows, "Rows", "Rows", "entries", "16777216")
		}
		switch p.Base {
		case BaseInteger, BaseRational:
		case BaseIntMod:
			needModulus()
		case BaseFiniteField:
			needField()
		default:
			sl.ReportError(p.Base, "Base", "Base", "base", "coefficient")
		}
	case KindFiniteField:
		needNoBase()
		needVar()
		needField()
	case KindNumberField:
		needNoBase()
		needVar()
		if !definingOK(p.Defining) {
			sl.ReportError(p.Defining, "Defining", "Defining", "squarefree", "deg>=1")
		}
	case KindPrecision:
		needNoBase()
		if p.Precision < MinPrecision {
			sl.ReportError(p.Precision, "Precision", "Precision", "min", "2")
		}
	}
}

func definingOK(f []*big.Rat) bool {
	if len(f) < 2 {
		return false
	}
	for _, q := range f {
		if q == nil {
			return false
		}
	}
	if f[len(f)-1].Sign() == 0 {
		return false
	}

	return backend.QPolyIsSquarefree(f)
}

// Validate checks p and reports ErrInvalidParameters naming the bad fields.
func (p Params) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, len(verrs))
		for i, fe := range verrs {
			fields[i] = fe.Field() + ":" + fe.Tag()
		}

		return fmt.Errorf("%w: %s", ErrInvalidParameters, strings.Join(fields, ", "))
	}

	return fmt.Errorf("%w: %v", ErrInvalidParameters, err)
}
