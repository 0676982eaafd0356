package build

import "context"

// stageFinalize promotes the completed staging directory to the output
// root. Every earlier stage must have succeeded; from here the new site
// replaces the old one atomically.
func stageFinalize(ctx context.Context, st *State) error {
	if err := st.builder.finalizeStaging(); err != nil {
		return newFatalStageError(StageFinalize, err)
	}
	return nil
}
