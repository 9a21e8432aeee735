package component

// Input stores the directional key state sampled this step.
type Input struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
}

var InputComponent = NewComponent[Input]()
