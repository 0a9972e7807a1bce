package viewmodel

// applyOptimistic runs a local state change ahead of its backing request:
// mutate is applied immediately, then request is issued, and if the request
// fails restore puts the previous state back before the fault is returned.
// Both the favorite toggle and the review deletion go through this helper.
func applyOptimistic(mutate func(), request func() error, restore func()) error {
	mutate()
	if err := request(); err != nil {
		restore()
		return err
	}
	return nil
}
