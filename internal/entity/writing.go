package entity

// EssayFeedback is the four-part review returned for a submitted essay.
type EssayFeedback struct {
	Grammar    string `json:"grammar" yaml:"grammar"`
	Vocabulary string `json:"vocabulary" yaml:"vocabulary"`
	Structure  string `json:"structure" yaml:"structure"`
	Overall    string `json:"overall" yaml:"overall"`
}
