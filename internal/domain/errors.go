package domain

import "errors"

var (
	// ErrEmptyQuestionSet is returned when the question source yields no usable questions.
	ErrEmptyQuestionSet = errors.New("empty question set")
	// ErrVerificationUnavailable indicates the answer judge could not produce a verdict.
	ErrVerificationUnavailable = errors.New("answer verification unavailable")
	// ErrSessionExpired indicates the identity token is no longer accepted.
	ErrSessionExpired = errors.New("session expired")
	// ErrAccessDenied indicates the identity service refused entry.
	ErrAccessDenied = errors.New("access denied")
	// ErrMalformedUpstreamResponse marks an unparseable collaborator payload before
	// it is normalized to ErrEmptyQuestionSet or ErrVerificationUnavailable.
	ErrMalformedUpstreamResponse = errors.New("malformed upstream response")

	// ErrRoundNotActive is returned for game actions outside an active round.
	ErrRoundNotActive = errors.New("round not active")
	// ErrRoundFinished is returned when advancing past the final question.
	ErrRoundFinished = errors.New("round finished")
	// ErrInvalidTeamCount is returned when the team count is outside [2,6].
	ErrInvalidTeamCount = errors.New("team count must be between 2 and 6")
	// ErrInvalidTeam is returned for a team id outside the round's range.
	ErrInvalidTeam = errors.New("invalid team id")
	// ErrNotClaimed is returned when an answer is attempted before a readiness claim.
	ErrNotClaimed = errors.New("no team has claimed readiness")
	// ErrWrongState is returned for an action not legal in the session's current state.
	ErrWrongState = errors.New("action not allowed in current question state")
)
