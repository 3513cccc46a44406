package services

import (
	"crypto/rand"
	"math/big"
	"strconv"

	"github.com/you/assetsvc/domain"
)

// PasscodeGeneratorImpl draws uniformly from [10^(n-1), 10^n), so codes never start with 0
type PasscodeGeneratorImpl struct {
	lo   *big.Int
	span *big.Int
}

// NewPasscodeGenerator creates a generator for codes of the given digit length
func NewPasscodeGenerator(length int) domain.PasscodeGenerator {
	if length < 1 {
		length = 6
	}
	lo := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length-1)), nil)
	hi := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	return &PasscodeGeneratorImpl{
		lo:   lo,
		span: new(big.Int).Sub(hi, lo),
	}
}

// Generate implements domain.PasscodeGenerator
func (g *PasscodeGeneratorImpl) Generate() string {
	n, err := rand.Int(rand.Reader, g.span)
	if err != nil {
		// crypto/rand only fails when the OS entropy source is unusable
		panic("passcode generator: " + err.Error())
	}
	n.Add(n, g.lo)
	if n.IsInt64() {
		return strconv.FormatInt(n.Int64(), 10)
	}
	return n.String()
}
