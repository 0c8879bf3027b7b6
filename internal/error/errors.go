package custom_err

import "errors"

var (
	ErrorNoWatches           = errors.New("nothing to watch")
	ErrorInvalidWatch        = errors.New("invalid watch")
	ErrorUnknownTag          = errors.New("event carries a tag with no registered watch")
	ErrorPollerClosed        = errors.New("poller closed")
	ErrorUnsupportedPlatform = errors.New("kqueue is not available on this platform")
)
