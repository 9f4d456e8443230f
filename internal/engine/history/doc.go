// Package history records score edits so they can be undone and redone.
//
// Every edit is a Command that applies itself and reverses itself. Element
// packages build commands (the fret diagram has one per interactive edit)
// and the score executes them through a History.
//
// An edit that touches several elements, such as a change to a diagram with
// linked copies in other parts, is recorded as a Macro: one undo step that
// replays its commands in order and reverses them backwards.
//
//	h := history.NewHistory(0)
//	err := h.Transaction("Set fret dot", func() error {
//		for _, cmd := range perCopy {
//			if err := h.Execute(cmd); err != nil {
//				return err
//			}
//		}
//		return nil
//	})
//
// Macros nest: an inner BeginGroup/EndGroup pair folds into the outermost
// macro, so a script run that performs many edits still undoes in one step.
package history
