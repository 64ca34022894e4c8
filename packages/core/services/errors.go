package services

import "errors"

// Domain outcomes. All of these are expected, recoverable results returned to
// the caller; anything else coming out of a service is a persistence failure.
var (
	ErrInvalidSchedule     = errors.New("start time or enrollment deadline is in the past")
	ErrVenueConflict       = errors.New("venue is already booked in that time slot")
	ErrInvalidCapacity     = errors.New("capacity must be at least 2")
	ErrPaymentMismatch     = errors.New("a paid match cannot use the free payment method")
	ErrClosedForEnrollment = errors.New("match is closed for enrollment")
	ErrAlreadyEnrolled     = errors.New("an enrollment already exists for this player and match")
	ErrDuplicateRequest    = errors.New("team has already requested to join this challenge")
	ErrMatchFull           = errors.New("match is already full")
	ErrUnauthorized        = errors.New("caller is not allowed to perform this action")
	ErrSelfRejection       = errors.New("cannot reject your own enrollment")
	ErrAlreadyResolved     = errors.New("request has already been resolved")
	ErrForeignPlayer       = errors.New("player is not enrolled in this match")
	ErrNotOpenMatch        = errors.New("squads can only be assigned on open matches")
	ErrMatchNotScheduled   = errors.New("match is not in the scheduled state")
	ErrAlreadyFinished     = errors.New("match has already been finalized")
	ErrMatchCancelled      = errors.New("cannot record a result for a cancelled match")
	ErrCaptainLeave        = errors.New("the captain cannot leave the team")
	ErrCaptainRemoval      = errors.New("the captain cannot be removed from the team")
	ErrNotTeamMember       = errors.New("player is not a member of this team")
	ErrAlreadyMember       = errors.New("player is already a member of this team")
	ErrPendingInvitation   = errors.New("a pending invitation already exists for this player")
)

// Not-found sentinels, one per entity the handlers resolve by id.
var (
	ErrPlayerNotFound     = errors.New("player not found")
	ErrVenueNotFound      = errors.New("venue not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrInvitationNotFound = errors.New("invitation not found")
)
