package apperr

import "fmt"

var (
	ErrValidation        = NewInvalidArgument("VALIDATION_FAILED", "validation error")
	ErrInvalidDateRange  = NewInvalidArgument("INVALID_DATE_RANGE", "startDate and endDate must be dates in YYYY-MM-DD format")
	ErrInvalidID         = NewInvalidArgument("INVALID_ID", "invalid id")
	ErrInvalidStockDelta = NewInvalidArgument("INVALID_STOCK_DELTA", "stock delta must not be zero")
	ErrInvalidBody       = NewInvalidArgument("INVALID_BODY", "request body must be valid JSON")

	ErrProductNotFound  = NewNotFound("PRODUCT_NOT_FOUND", "product not found")
	ErrCategoryNotFound = NewNotFound("CATEGORY_NOT_FOUND", "category not found")
	ErrSupplierNotFound = NewNotFound("SUPPLIER_NOT_FOUND", "supplier not found")
	ErrUserNotFound     = NewNotFound("USER_NOT_FOUND", "user not found")
	ErrRoleNotFound     = NewNotFound("ROLE_NOT_FOUND", "role not found")
	ErrIssuanceNotFound = NewNotFound("ISSUANCE_NOT_FOUND", "issuance record not found")

	ErrStockConflict  = NewConflict("STOCK_CONFLICT", "product stock was modified concurrently, retry the operation")
	ErrCategoryExists = NewConflict("CATEGORY_EXISTS", "category with this name already exists")
	ErrCategoryInUse  = NewConflict("CATEGORY_IN_USE", "category is referenced by products")
	ErrSupplierExists = NewConflict("SUPPLIER_EXISTS", "supplier with this email already exists")
	ErrSupplierInUse  = NewConflict("SUPPLIER_IN_USE", "supplier is referenced by products")
	ErrEmailExists    = NewConflict("EMAIL_EXISTS", "email already exists")

	ErrInvalidCredentials = NewUnauthorized("INVALID_CREDENTIALS", "invalid email or password")
	ErrUserInactive       = NewUnauthorized("USER_INACTIVE", "user account is inactive")
	ErrInvalidToken       = NewUnauthorized("INVALID_TOKEN", "invalid or expired token")
	ErrSessionExpired     = NewUnauthorized("SESSION_EXPIRED", "session expired (logged in on another device)")
	ErrWrongPassword      = NewUnauthorized("WRONG_PASSWORD", "current password is incorrect")

	ErrForbidden = NewForbidden("FORBIDDEN", "insufficient privileges")
)

// InsufficientStock reports a decrement that would drive quantity negative.
func InsufficientStock(available, requested int) *Error {
	return New(KindInsufficientStock, "INSUFFICIENT_STOCK",
		fmt.Sprintf("insufficient stock: requested %d, available %d", requested, available))
}
