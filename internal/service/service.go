package service

import (
	"github.com/skycast/skycast/internal/domain"
)

// LookupJournal is re-exported from domain for convenience
type LookupJournal = domain.LookupJournal
