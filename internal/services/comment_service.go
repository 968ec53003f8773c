package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/identity"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/models"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/realtime"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/repository"
)

type CommentService struct {
	repo     *repository.CommentRepository
	users    *repository.UserRepository
	prefs    *repository.NotificationPreferencesRepo
	activity *ActivityService
	notifier *NotificationService
	email    *EmailService
}

func NewCommentService(
	repo *repository.CommentRepository,
	users *repository.UserRepository,
	prefs *repository.NotificationPreferencesRepo,
	activity *ActivityService,
	notifier *NotificationService,
	email *EmailService,
) *CommentService {
	return &CommentService{
		repo:     repo,
		users:    users,
		prefs:    prefs,
		activity: activity,
		notifier: notifier,
		email:    email,
	}
}

// Add persists a comment on a profile, resolves @-mentions against the
// user table, notifies mentioned users over the live stream, and
// best-effort e-mails those who opted in. The comment itself succeeds even
// when every side effect fails.
func (s *CommentService) Add(ctx context.Context, profileID uuid.UUID, author, text string) (*models.Comment, error) {
	known, err := s.users.ListUserIDs()
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to load user ids for mention parsing")
		known = nil
	}
	mentions := ParseMentions(text, known)

	comment := &models.Comment{
		ID:        uuid.New(),
		ProfileID: profileID,
		Author:    identity.Canonical(author),
		Text:      text,
		Mentions:  mentions,
	}
	if err := s.repo.Create(comment); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("profile_id", profileID.String()).Msg("Failed to create comment")
		return nil, fmt.Errorf("create comment: %w", err)
	}
	_ = s.activity.Append(ctx, comment.Author, "comment_added", profileID.String(),
		map[string]any{"mentions": mentions})

	if len(mentions) > 0 {
		s.notifier.Dispatch(ctx, realtime.Event{
			Type:        realtime.EventTag,
			TargetUsers: mentions,
			Message:     fmt.Sprintf("%s mentioned you in a comment", comment.Author),
			Data:        map[string]any{"profileId": profileID.String(), "commentId": comment.ID.String()},
		})
		s.emailMentioned(ctx, comment.Author, mentions, text)
	}
	return comment, nil
}

func (s *CommentService) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]models.Comment, error) {
	comments, err := s.repo.ListByProfile(profileID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("profile_id", profileID.String()).Msg("Failed to list comments")
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

func (s *CommentService) emailMentioned(ctx context.Context, author string, mentions []string, text string) {
	if s.email == nil {
		return
	}
	for _, userID := range mentions {
		pref, err := s.prefs.Get(userID)
		if err != nil || !pref.EmailOnTag || !pref.MentionAlerts {
			continue
		}
		user, err := s.users.FindByUserID(userID)
		if err != nil || user.Email == "" {
			continue
		}
		if err := s.email.SendMentionEmail(user.Email, author, text); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("user_id", userID).Msg("Failed to send mention email")
		}
	}
}

// ParseMentions extracts the canonical userIds mentioned in text as
// "@Name". Names may contain spaces ("@Mohamed Alami"), so at every '@'
// the longest known identity that matches wins. Matching is
// case-insensitive against the known list; the returned ids are canonical
// and deduplicated, in order of first mention.
func ParseMentions(text string, knownUsers []string) []string {
	if len(knownUsers) == 0 {
		return nil
	}
	// Longest first so "@Mohamed Alami" beats "@Mohamed".
	candidates := make([]string, 0, len(knownUsers)+1)
	candidates = append(candidates, knownUsers...)
	candidates = append(candidates, "Super Admin") // legacy spelling still appears in comments
	sort.Slice(candidates, func(i, j int) bool { return len(candidates[i]) > len(candidates[j]) })

	var out []string
	seen := make(map[string]struct{})
	for i := 0; i < len(text); i++ {
		if text[i] != '@' {
			continue
		}
		// Compare in place. Lowering the whole text up front would shift
		// byte offsets for runes whose case folding changes length.
		rest := text[i+1:]
		for _, name := range candidates {
			if name == "" || len(name) > len(rest) {
				continue
			}
			if !strings.EqualFold(rest[:len(name)], name) {
				continue
			}
			// The mention must end at a word boundary.
			end := i + 1 + len(name)
			if end < len(text) && isNameChar(text[end]) {
				continue
			}
			canonical := identity.Canonical(name)
			if _, dup := seen[canonical]; !dup {
				seen[canonical] = struct{}{}
				out = append(out, canonical)
			}
			i = end - 1
			break
		}
	}
	return out
}

func isNameChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '_'
}
