package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/lordvidex/errs/v2"

	"github.com/kodekulture/contexto-server/game"
	"github.com/kodekulture/contexto-server/repository"
	"github.com/kodekulture/contexto-server/service/hasher"
)

var ErrNoPlayer = errs.B().Code(errs.InvalidArgument).Msg("player not provided").Err()

type gameService struct {
	sr repository.Session
	pr repository.Player
	h  hasher.Bcrypt
}

func newGameSrv(sr repository.Session, pr repository.Player) *gameService {
	return &gameService{sr: sr, pr: pr}
}

func (s *gameService) CreatePlayer(ctx context.Context, player *game.Player) error {
	if player == nil {
		return ErrNoPlayer
	}
	var err error
	player.Password, err = s.h.Hash(player.Password)
	if err != nil {
		return errs.WrapCode(err, errs.Internal, "password processing error")
	}
	if err = s.pr.Create(ctx, *player); err != nil {
		return errs.WrapCode(err, errs.InvalidArgument, "error creating player")
	}
	return nil
}

func (s *gameService) GetPlayer(ctx context.Context, username string) (*game.Player, error) {
	p, err := s.pr.GetByUsername(ctx, username)
	if err != nil {
		return nil, errs.WrapCode(err, errs.NotFound, "player not found")
	}
	return p, nil
}

func (s *gameService) ComparePasswords(hash, original string) error {
	return s.h.Compare(hash, original)
}

func (s *gameService) SaveSession(ctx context.Context, sess *game.Session) error {
	if err := s.sr.Save(ctx, sess); err != nil {
		return errs.WrapCode(err, errs.Internal, "error saving session")
	}
	return nil
}

func (s *gameService) UpdateSession(ctx context.Context, sess *game.Session) error {
	if err := s.sr.Update(ctx, sess); err != nil {
		return errs.WrapCode(err, errs.Internal, "error updating session")
	}
	return nil
}

func (s *gameService) RecordGuess(ctx context.Context, id uuid.UUID, g game.Guess) error {
	if err := s.sr.AppendGuess(ctx, id, g); err != nil {
		return errs.WrapCode(err, errs.Internal, "error recording guess")
	}
	return nil
}

func (s *gameService) LoadSession(ctx context.Context, id uuid.UUID) (*game.Session, error) {
	sess, err := s.sr.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *gameService) DeleteSession(ctx context.Context, id uuid.UUID) error {
	return s.sr.Delete(ctx, id)
}
