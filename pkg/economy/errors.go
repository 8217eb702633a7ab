package economy

import "errors"

var (
	ErrUnknownMarket         = errors.New("unknown market")
	ErrUnknownCompany        = errors.New("unknown company")
	ErrUnknownRecipe         = errors.New("unknown recipe")
	ErrInvalidQuantity       = errors.New("quantity must be greater than zero")
	ErrInsufficientCredits   = errors.New("insufficient credits")
	ErrOutOfStock            = errors.New("resource out of stock")
	ErrNoDemand              = errors.New("company has no demand for resource")
	ErrInsufficientResources = errors.New("insufficient resources in cargo")
)
