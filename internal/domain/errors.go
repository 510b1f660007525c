package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrDuplicateGSTIN     = errors.New("profile with this GSTIN already exists")
	ErrInvalidGSTINLength = errors.New("gstin must be exactly 15 characters")
	ErrInvalidGSTINFormat = errors.New("gstin does not match the required format")
	ErrUnknownStateCode   = errors.New("gstin state code is not a known state")
	ErrBadGSTINChecksum   = errors.New("gstin checksum character is invalid")
	ErrInvalidPeriod      = errors.New("filing period must be MMYYYY")
	ErrInvalidTransition  = errors.New("filing status transition not permitted")
	ErrInvoiceFrozen      = errors.New("invoice is frozen in a filed return")
	ErrProfileHasFilings  = errors.New("profile has filings and cannot be deleted")
	ErrEmptyLineItems     = errors.New("invoice requires at least one line item")
	ErrUnsupportedReturn  = errors.New("unsupported return type")
)
