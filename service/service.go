// Package service wires the game core to its collaborators: the embedding
// provider, the vocabulary, persistence and the session hub.
package service

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/lordvidex/errs/v2"
	"github.com/rs/zerolog/log"

	"github.com/kodekulture/contexto-server/embedding"
	"github.com/kodekulture/contexto-server/game"
	"github.com/kodekulture/contexto-server/game/rank"
	"github.com/kodekulture/contexto-server/game/score"
	"github.com/kodekulture/contexto-server/game/vocab"
	"github.com/kodekulture/contexto-server/repository"
)

type Service struct {
	*gameService
	*hub
	*broker

	provider   embedding.Provider
	vocabulary *vocab.Vocabulary
	vocabEmbs  [][]float32 // parallel to vocabulary.Words()
	index      *vocab.Index
	scorer     *score.Scorer
	daily      daily
	snap       repository.Snapshot
}

// New loads the vocabulary, embeds it, builds the hint index and restores
// any session snapshot from the previous process. Vocabulary or embedding
// failures abort startup; an empty vocabulary does not (the service boots
// but refuses to start games).
func New(appCtx context.Context, provider embedding.Provider, vr repository.Vocabulary, sr repository.Session, pr repository.Player, snap repository.Snapshot) (*Service, error) {
	entries, err := vr.Load(appCtx)
	if err != nil {
		return nil, errs.WrapCode(err, errs.Internal, "error loading vocabulary")
	}
	v := vocab.New(entries)

	s := &Service{
		gameService: newGameSrv(sr, pr),
		broker:      newBroker(),
		provider:    provider,
		vocabulary:  v,
		snap:        snap,
	}
	s.scorer = score.New(provider, v)

	if v.Len() > 0 {
		words := v.Words()
		embs, err := provider.Embed(appCtx, words)
		if err != nil {
			return nil, errs.WrapCode(err, errs.Unavailable, "error embedding vocabulary")
		}
		s.vocabEmbs = embs
		s.index = vocab.NewIndex(words, embs)
	}

	restored, err := snap.Load()
	if err != nil {
		return nil, errs.WrapCode(err, errs.Internal, "error loading session snapshot")
	}
	s.hub = newHub(appCtx, restored)
	go func() {
		if err := snap.Drop(); err != nil {
			log.Err(err).Msg("error dropping session snapshot")
		}
	}()
	log.Info().Int("words", v.Len()).Int("restored", len(restored)).Msg("service ready")
	return s, nil
}

// StartGame creates a session in the given mode. Daily mode ignores the
// difficulty and draws the memoized calendar word; practice draws
// uniformly from the requested band.
func (s *Service) StartGame(ctx context.Context, owner string, mode game.Mode, difficulty string) (game.NewGameResult, error) {
	if s.vocabulary.Len() == 0 {
		return game.NewGameResult{}, game.ErrNoVocabulary
	}

	var (
		secret  string
		message string
		band    vocab.Band
	)
	switch mode {
	case game.ModeDaily:
		band = vocab.Medium
		pool := s.vocabulary.BandWords(vocab.Medium)
		if len(pool) == 0 {
			pool = s.vocabulary.Words()
		}
		secret = s.daily.pick(pool)
		message = "Today's daily challenge!"
	default:
		mode = game.ModePractice
		band = vocab.ParseBand(difficulty)
		pool := s.vocabulary.BandWords(band)
		if len(pool) == 0 {
			pool = s.vocabulary.Words()
		}
		secret = pool[rand.IntN(len(pool))]
		message = fmt.Sprintf("Practice mode - %s difficulty", band)
	}

	deps, err := s.bind(ctx, secret)
	if err != nil {
		return game.NewGameResult{}, err
	}
	sess := game.New(owner, mode, band, secret, deps)
	s.hub.Set(sess.ID, sess)

	if err := s.gameService.SaveSession(ctx, sess); err != nil {
		log.Err(err).Stringer("game_id", sess.ID).Msg("failed to persist new session")
	}
	return game.NewGameResult{
		GameID:     sess.ID,
		Mode:       mode,
		Difficulty: band.String(),
		Hint:       sess.LetterHint(),
		Message:    message,
	}, nil
}

// SubmitGuess scores one guess against a session's secret word.
func (s *Service) SubmitGuess(ctx context.Context, owner string, id uuid.UUID, word string) (game.GuessResult, error) {
	sess, err := s.session(ctx, owner, id)
	if err != nil {
		return game.GuessResult{}, err
	}
	result, err := sess.Guess(ctx, word)
	if err != nil {
		return game.GuessResult{}, err
	}

	// in-memory state stays authoritative; persistence failures are
	// reported, not retried
	if err := s.gameService.RecordGuess(ctx, id, result.Record); err != nil {
		log.Err(err).Stringer("game_id", id).Msg("failed to persist guess")
	}
	if result.Won {
		if err := s.gameService.UpdateSession(ctx, sess); err != nil {
			log.Err(err).Stringer("game_id", id).Msg("failed to persist win")
		}
	}
	s.broker.publish(id, result)
	return result, nil
}

// GetHint issues the next unused near neighbor of the secret word.
func (s *Service) GetHint(ctx context.Context, owner string, id uuid.UUID) (game.HintResult, error) {
	sess, err := s.session(ctx, owner, id)
	if err != nil {
		return game.HintResult{}, err
	}
	hint, err := sess.Hint()
	if err != nil {
		return game.HintResult{}, err
	}
	// issued hints survive eviction so a rehydrated session cannot
	// hand the same word out twice
	if err := s.gameService.UpdateSession(ctx, sess); err != nil {
		log.Err(err).Stringer("game_id", id).Msg("failed to persist hint")
	}
	return hint, nil
}

// Reveal returns the secret word; it never alters session state.
func (s *Service) Reveal(ctx context.Context, owner string, id uuid.UUID) (string, error) {
	sess, err := s.session(ctx, owner, id)
	if err != nil {
		return "", err
	}
	return sess.Reveal(), nil
}

// Stats summarizes a session.
func (s *Service) Stats(ctx context.Context, owner string, id uuid.UUID) (game.SessionStats, error) {
	sess, err := s.session(ctx, owner, id)
	if err != nil {
		return game.SessionStats{}, err
	}
	return sess.Stats(), nil
}

// DeleteSession evicts a session from the hub and removes its stored copy.
func (s *Service) DeleteSession(ctx context.Context, owner string, id uuid.UUID) error {
	if _, err := s.session(ctx, owner, id); err != nil {
		return err
	}
	s.hub.Delete(id)
	s.broker.close(id)
	if err := s.gameService.DeleteSession(ctx, id); err != nil {
		log.Err(err).Stringer("game_id", id).Msg("failed to delete stored session")
	}
	return nil
}

// session returns the live session for id, hydrating it from persistence
// and rebuilding its ranking engine when the hub copy is absent or was
// restored unbound.
func (s *Service) session(ctx context.Context, owner string, id uuid.UUID) (*game.Session, error) {
	sess, ok := s.hub.Get(id)
	if !ok {
		stored, err := s.gameService.LoadSession(ctx, id)
		if err != nil {
			return nil, err
		}
		sess = stored
		s.hub.Set(id, sess)
	}
	if sess.Owner != owner {
		return nil, game.ErrSessionNotFound
	}
	if !sess.Bound() {
		deps, err := s.bind(ctx, sess.Secret)
		if err != nil {
			return nil, err
		}
		sess.Rebind(deps)
	}
	return sess, nil
}

// bind builds the runtime collaborators for a secret word: its embedding,
// the full ranking table and the hint candidate pool.
func (s *Service) bind(ctx context.Context, secret string) (game.Deps, error) {
	vecs, err := s.provider.Embed(ctx, []string{secret})
	if err != nil {
		return game.Deps{}, errs.WrapCode(err, errs.Unavailable, "embedding provider unavailable")
	}
	secretEmb := vecs[0]

	table, err := rank.Build(ctx, s.scorer, s.vocabulary.Words(), s.vocabEmbs, secret, secretEmb)
	if err != nil {
		return game.Deps{}, err
	}
	// +1 so the pool still holds HintPoolSize words after the secret
	// itself is filtered out
	hints := s.index.NearestNeighbors(secretEmb, game.HintPoolSize+1)
	return game.Deps{
		Vocab:          s.vocabulary,
		Scorer:         s.scorer,
		Table:          table,
		HintCandidates: hints,
		SecretEmb:      secretEmb,
	}, nil
}

// Stop dumps the active sessions so the next process can restore them.
func (s *Service) Stop(ctx context.Context) {
	sessions := s.hub.All()
	if err := s.snap.Dump(sessions); err != nil {
		log.Err(err).Caller().Msg("failed to dump session snapshot")
	}
}
