package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrAccountNotFound indicates that no bank account exists for the given IBAN.
var ErrAccountNotFound = errors.New("bank account not found")

// ErrAccountAlreadyLocked is returned when locking an account that is already locked.
var ErrAccountAlreadyLocked = errors.New("account is already locked")

// ErrAccountNotLocked is returned when unlocking an account that is not locked.
var ErrAccountNotLocked = errors.New("account is not locked and cannot be unlocked")

// ErrBankAccountLocked is returned when money movement touches a locked account.
var ErrBankAccountLocked = errors.New("bank account is locked")

// ErrInsufficientBalance is returned when the source account cannot cover a transfer.
var ErrInsufficientBalance = errors.New("account has insufficient balance")

// ErrUnsupportedTransfer is returned when a savings account sends money anywhere
// other than its reference checking account.
var ErrUnsupportedTransfer = errors.New("savings account can only send to reference checking account")

// ErrWithdrawalNotSupported is returned when the source account kind does not allow withdrawals.
var ErrWithdrawalNotSupported = errors.New("withdrawal not supported for account")

// ErrTransferIncomplete indicates that a transfer debited the source account but
// could not credit the destination.
var ErrTransferIncomplete = errors.New("transfer could not be completed")
