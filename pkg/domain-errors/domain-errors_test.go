package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestMessageFallsBackToCode() {
	s.Equal("tenant has no owner member", New(CodeInvariantViolation, "tenant has no owner member").Error())
	s.Equal("not_found", (&Error{Code: CodeNotFound}).Error())
}

func (s *DomainErrorsSuite) TestIsMatchesByCode() {
	inner := New(CodeNotFound, "view not found")
	wrapped := fmt.Errorf("find view: %w", inner)

	s.True(errors.Is(wrapped, &Error{Code: CodeNotFound}))
	s.False(errors.Is(wrapped, &Error{Code: CodeForbidden}))
	s.False(errors.Is(errors.New("not_found"), &Error{Code: CodeNotFound}))
}

func (s *DomainErrorsSuite) TestWrap() {
	s.Run("keeps the code of an existing domain error", func() {
		err := Wrap(New(CodeForbidden, "view belongs to another user"), CodeInternal, "load view")
		s.True(HasCode(err, CodeForbidden))
		s.Equal("load view", err.Error())
	})

	s.Run("applies the given code to plain errors", func() {
		root := errors.New("connection refused")
		err := Wrap(root, CodeUnavailable, "list tenants")
		s.True(HasCode(err, CodeUnavailable))
		s.ErrorIs(err, root)
	})
}

func (s *DomainErrorsSuite) TestHasCodeOnNonDomainError() {
	s.False(HasCode(errors.New("boom"), CodeInternal))
	s.False(HasCode(nil, CodeInternal))
}

func (s *DomainErrorsSuite) TestCodeOf() {
	code, ok := CodeOf(fmt.Errorf("page: %w", New(CodeTimeout, "dashboard load timed out")))
	s.True(ok)
	s.Equal(CodeTimeout, code)

	_, ok = CodeOf(errors.New("plain"))
	s.False(ok)
	s.False(IsDomain(errors.New("plain")))
	s.True(IsDomain(New(CodeInternal, "x")))
}
