package sound

// Effect names, matched against file base names in the sound directory
const (
	CardPlayed = "card"
	TrickWon   = "trick"
	GameOver   = "gameover"
	Spoiled    = "spoiled"
)
