package league

// Endpoint templates under the league API base URL.
const (
	matchEndpoint           = "/v1/matches/%s"
	startMatchEndpoint      = "/v1/matches/%s/start"
	endFirstHalfEndpoint    = "/v1/matches/%s/end-first-half"
	startSecondHalfEndpoint = "/v1/matches/%s/start-second-half"
	finalizeMatchEndpoint   = "/v1/matches/%s/finalize"
	suspendMatchEndpoint    = "/v1/matches/%s/suspend"
	shootoutEndpoint        = "/v1/matches/%s/shootout"

	incidentsEndpoint     = "/v1/matches/%s/incidents"
	goalsEndpoint         = "/v1/matches/%s/goals"
	goalEndpoint          = "/v1/matches/%s/goals/%s"
	cardsEndpoint         = "/v1/matches/%s/cards"
	cardEndpoint          = "/v1/matches/%s/cards/%s"
	substitutionsEndpoint = "/v1/matches/%s/substitutions"
	substitutionEndpoint  = "/v1/matches/%s/substitutions/%s"

	rosterEndpoint = "/v1/teams/%s/roster"
)
