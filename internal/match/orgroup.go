package match

// MatchORGroup evaluates a best-of-N alternative group against a student's
// full course list.
func MatchORGroup(group ORGroupRequirement, courses []CourseRecord) SubjectMatch {
	return matchGroupLookup(group, courseList(courses))
}

// matchGroupLookup scans options in declared order, keeps the best score
// seen, and stops at the first exact 1.0. First-full-match-wins is a
// deliberate order-dependent rule: when two options both fully match, the
// one declared first is reported.
func matchGroupLookup(group ORGroupRequirement, src courseLookup) SubjectMatch {
	if len(group.Options) == 0 {
		return SubjectMatch{
			Status: StatusNoMatch,
			Score:  0,
			Group:  true,
			Reason: "requirement group has no options",
		}
	}

	var best SubjectMatch
	for i, opt := range group.Options {
		m := matchSubjectLookup(opt, src)
		if i == 0 || m.Score > best.Score {
			best = m
			best.MatchedOptionID = opt.SubjectID
			best.MatchedOptionName = opt.SubjectName
		}
		if m.Score == 1.0 {
			break
		}
	}

	best.Group = true
	best.Critical = group.Critical()
	return best
}
