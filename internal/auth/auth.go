package auth

// Service gates the chat surface to a pre-provisioned set of users.
// An empty allowlist leaves the surface open.
type Service struct {
	allowed map[int64]struct{}
	admin   int64
}

func New(allowedIDs []int64, adminID int64) *Service {
	s := &Service{allowed: make(map[int64]struct{}), admin: adminID}
	for _, id := range allowedIDs {
		s.allowed[id] = struct{}{}
	}
	return s
}

func (s *Service) IsAllowed(userID int64) bool {
	if len(s.allowed) == 0 {
		return true
	}
	if s.admin != 0 && userID == s.admin {
		return true
	}
	_, ok := s.allowed[userID]
	return ok
}

func (s *Service) IsAdmin(userID int64) bool {
	return s.admin != 0 && userID == s.admin
}
