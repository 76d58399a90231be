package client

import "github.com/straye-as/calltracker-api/internal/domain"

// Wire types exchanged with the server. They alias the server's DTOs so
// callers outside this module can name and build them.
type (
	AuthResponse       = domain.AuthResponse
	User               = domain.UserDTO
	Call               = domain.CallDTO
	CallClient         = domain.CallClientDTO
	CallUser           = domain.CallUserDTO
	ScheduledCall      = domain.ScheduledCallDTO
	Calendar           = domain.CalendarDTO
	CalendarDay        = domain.CalendarDayDTO
	CalendarEntry      = domain.CalendarEntryDTO
	ClientImportRecord = domain.ClientImportRecord
	CallImportRecord   = domain.CallImportRecord
	FlexibleInt        = domain.FlexibleInt
	ImportResult       = domain.ImportResult
)
