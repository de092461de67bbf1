package service

import "errors"

// ErrSplitFailed distinguishes a failed partial-win split from ordinary
// validation errors. The split's two writes run in one transaction, so the
// failure rolled back wholesale; the wrapped cause is attached for logging.
var ErrSplitFailed = errors.New("partial-win split failed and was rolled back")
