package mocks

import (
	"strings"
	"sync/atomic"

	"github.com/you/assetsvc/domain"
)

const fakeHashPrefix = "hashed_"

// MockPasswordService is a reversible stand-in for bcrypt. Hash prefixes the
// plaintext so assertions can tell a stored password was hashed.
type MockPasswordService struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(hashedPassword, password string) bool

	verifyCalls atomic.Int32
}

func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

func (m *MockPasswordService) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return fakeHashPrefix + password, nil
}

func (m *MockPasswordService) Verify(hashedPassword, password string) bool {
	m.verifyCalls.Add(1)
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPassword, password)
	}
	plain, ok := strings.CutPrefix(hashedPassword, fakeHashPrefix)
	return ok && plain == password
}

// VerifyCalls reports how many times Verify ran
func (m *MockPasswordService) VerifyCalls() int {
	return int(m.verifyCalls.Load())
}

var _ domain.PasswordService = (*MockPasswordService)(nil)
