package shoot

import "github.com/archerylive/shootlive/internal/models"

// MergeShoots reconciles two divergent copies of the same shoot, mutating
// target into the merged aggregate. It exists because every save is a
// read-modify-write: between one caller's read and its write, another caller
// may have written a newer version, and the merged result must keep both
// sets of changes.
//
// Rules, in order:
//  1. If source carries a newer aggregate LastUpdated, adopt it. If source
//     additionally has fewer participants, that is taken as evidence that
//     source performed a deletion, and target is restricted to the IDs still
//     present in source. This is a heuristic: a concurrent join and leave can
//     make the counts coincide and slip a removal through.
//  2. Each source participant overwrites its target counterpart when its
//     LastUpdated is greater than or equal to the target's (the incoming copy
//     wins ties), and is appended when target has no participant with its ID.
//  3. Participants only target knows about, and not pruned by rule 1, are
//     kept untouched.
//
// Both repository backends must share this one implementation; divergent
// merge logic across backends would break convergence.
func MergeShoots(target, source *models.Shoot) {
	if source.LastUpdated.After(target.LastUpdated) {
		if len(source.Participants) < len(target.Participants) {
			keep := make(map[string]struct{}, len(source.Participants))
			for _, p := range source.Participants {
				keep[p.ID] = struct{}{}
			}

			kept := make([]*models.ShootParticipant, 0, len(source.Participants))
			for _, p := range target.Participants {
				if _, ok := keep[p.ID]; ok {
					kept = append(kept, p)
				}
			}
			target.Participants = kept
		}

		target.LastUpdated = source.LastUpdated
	}

	for _, sp := range source.Participants {
		existing := target.Participant(sp.ID)
		if existing == nil {
			target.Participants = append(target.Participants, sp.Clone())
			continue
		}

		if !sp.LastUpdated.Before(existing.LastUpdated) {
			*existing = *sp.Clone()
		}
	}
}
