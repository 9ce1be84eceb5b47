package effectors

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vthunder/wabot/internal/logging"
	"github.com/vthunder/wabot/internal/session"
	"github.com/vthunder/wabot/internal/types"
)

// ErrFileNotFound is wrapped when a file to send does not exist
var ErrFileNotFound = errors.New("file not found")

// Effector performs outbound actions against the session.
// Every action is best effort: no retries, one error back to the caller.
type Effector struct {
	session  session.Session
	readFile func(string) ([]byte, error)
	onSend   func(to string, content types.Content)
}

// New creates an effector over a session
func New(s session.Session) *Effector {
	return &Effector{
		session:  s,
		readFile: os.ReadFile,
	}
}

// SetOnSend sets a callback invoked after every successful send
func (e *Effector) SetOnSend(callback func(to string, content types.Content)) {
	e.onSend = callback
}

func (e *Effector) send(ctx context.Context, op, to string, content types.Content) (types.MessageRef, error) {
	ref, err := e.session.Send(ctx, to, content)
	if err != nil {
		logging.Warn("effector", "%s to %s failed: %v", op, to, err)
		return types.MessageRef{}, NewError(KindTransport, op, err)
	}
	if e.onSend != nil {
		e.onSend(to, content)
	}
	return ref, nil
}

// Text sends a plain text message
func (e *Effector) Text(ctx context.Context, to, text string) error {
	_, err := e.send(ctx, "send text", to, types.Content{Kind: types.ContentText, Text: text})
	return err
}

// Roster fetches the current participant list of a group
func (e *Effector) Roster(ctx context.Context, groupID string) (types.Group, error) {
	g, err := e.session.FetchGroup(ctx, groupID)
	if err != nil {
		return types.Group{}, NewError(KindResource, "fetch roster", err)
	}
	return g, nil
}

// Groups fetches every joined group
func (e *Effector) Groups(ctx context.Context) ([]types.Group, error) {
	groups, err := e.session.FetchJoinedGroups(ctx)
	if err != nil {
		return nil, NewError(KindResource, "fetch groups", err)
	}
	return groups, nil
}

// HiddenMention sends text to a group with a single silent mention
func (e *Effector) HiddenMention(ctx context.Context, groupID, target, text string) error {
	target = types.NormalizeParticipant(target)
	_, err := e.send(ctx, "hidden mention", groupID, types.Content{
		Kind:     types.ContentText,
		Text:     text,
		Mentions: []string{target},
	})
	if err != nil {
		return err
	}
	logging.Info("effector", "Hidden mention sent to %s (mention: %s)", groupID, target)
	return nil
}

// TagAll sends text to a group silently mentioning every participant
func (e *Effector) TagAll(ctx context.Context, groupID, text string) (types.Group, error) {
	g, err := e.Roster(ctx, groupID)
	if err != nil {
		return types.Group{}, err
	}
	_, err = e.send(ctx, "tag all", groupID, types.Content{
		Kind:     types.ContentText,
		Text:     text,
		Mentions: g.Participants,
	})
	if err != nil {
		return g, err
	}
	logging.Info("effector", "Tag all sent (%d) in group %s", len(g.Participants), g.Subject)
	return g, nil
}

// SendFile uploads a file to a chat as image, video, audio or document
func (e *Effector) SendFile(ctx context.Context, chatID, path, caption string) error {
	return e.sendFile(ctx, "send file", chatID, path, caption, nil)
}

// SendFileTagAll sends a file silently mentioning every participant.
// The roster is fetched first; if that fails nothing is read or sent.
func (e *Effector) SendFileTagAll(ctx context.Context, groupID, path, caption string) (types.Group, error) {
	g, err := e.Roster(ctx, groupID)
	if err != nil {
		return types.Group{}, err
	}
	return g, e.sendFile(ctx, "send file tag all", groupID, path, caption, g.Participants)
}

func (e *Effector) sendFile(ctx context.Context, op, chatID, path, caption string, mentions []string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			logging.Warn("effector", "File not found: %s", path)
			return NewError(KindResource, op, fmt.Errorf("%w: %s", ErrFileNotFound, path))
		}
		return NewError(KindResource, op, err)
	}
	data, err := e.readFile(path)
	if err != nil {
		return NewError(KindResource, op, fmt.Errorf("read %s: %w", path, err))
	}

	if _, err := e.send(ctx, op, chatID, mediaContent(path, data, caption, mentions)); err != nil {
		return err
	}
	logging.Info("effector", "File sent to %s: %s", chatID, filepath.Base(path))
	return nil
}

// Reply quotes ref in its chat. In groups the whole roster is silently
// mentioned as well; the returned group is zero for private chats.
func (e *Effector) Reply(ctx context.Context, ref types.MessageRef, text string) (types.Group, error) {
	content := types.Content{
		Kind:   types.ContentText,
		Text:   text,
		Quoted: &ref,
	}

	var g types.Group
	if types.IsGroup(ref.ChatID) {
		var err error
		if g, err = e.Roster(ctx, ref.ChatID); err != nil {
			return types.Group{}, err
		}
		content.Mentions = g.Participants
	}

	if _, err := e.send(ctx, "reply", ref.ChatID, content); err != nil {
		return g, err
	}
	logging.Info("effector", "Reply sent to %s", ref.ChatID)
	return g, nil
}
