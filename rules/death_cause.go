package rules

const (
	// DeathCauseSelfCollision is the death reason when the head of the snake
	// runs into its own body
	DeathCauseSelfCollision = "self-collision"
)
