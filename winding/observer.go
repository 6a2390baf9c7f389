package winding

// Observer receives run lifecycle notifications from the control loop.
// Calls happen on the control loop and must not block for long.
type Observer interface {
	RunStarted(p Plan)
	Progress(s Status)
	RunFinished(r Result)
}

type nopObserver struct{}

func (nopObserver) RunStarted(Plan)    {}
func (nopObserver) Progress(Status)    {}
func (nopObserver) RunFinished(Result) {}

// Observers fans notifications out to several observers
type Observers []Observer

func (o Observers) RunStarted(p Plan) {
	for _, obs := range o {
		obs.RunStarted(p)
	}
}

func (o Observers) Progress(s Status) {
	for _, obs := range o {
		obs.Progress(s)
	}
}

func (o Observers) RunFinished(r Result) {
	for _, obs := range o {
		obs.RunFinished(r)
	}
}
