package report

import "leeter/internal/journal"

// BriefTimeline drops blacklisted kinds and then suppresses a record whose
// kind is in dedupe and equals the kind of the record kept just before it.
func BriefTimeline(records []journal.Record, blacklist, dedupe []string) []journal.Record {
	blocked := toSet(blacklist)
	collapse := toSet(dedupe)

	out := make([]journal.Record, 0, len(records))
	prevKind := ""
	for _, rec := range records {
		if _, ok := blocked[rec.Kind]; ok {
			continue
		}
		if _, ok := collapse[rec.Kind]; ok && rec.Kind == prevKind {
			continue
		}
		out = append(out, rec)
		prevKind = rec.Kind
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return set
}
