package permissions

import (
	"errors"
	"time"

	"github.com/galeria-app/galeriabackend/apperrors"
	"github.com/galeria-app/galeriabackend/models"
	"github.com/galeria-app/galeriabackend/repository"
)

// Level is an actor's effective permission on an album or on media
// reached through it.
type Level int

const (
	LevelNone Level = iota
	LevelRead
	LevelReadWrite
)

func (l Level) String() string {
	switch l {
	case LevelRead:
		return "read"
	case LevelReadWrite:
		return "read_write"
	default:
		return "none"
	}
}

// CanRead reports whether the level allows viewing.
func (l Level) CanRead() bool {
	return l >= LevelRead
}

// CanWrite reports whether the level allows mutation.
func (l Level) CanWrite() bool {
	return l >= LevelReadWrite
}

// Presented carries the anonymous-access material a caller may attach
// to a request: a share link slug and the password typed for it.
type Presented struct {
	ShareLinkSlug string
	Password      string
}

// Resolver computes effective permissions. Every entry point
// authorizes through Resolve; nothing else re-derives ownership,
// invite or share-link logic.
type Resolver struct {
	albums repository.AlbumRepository
	links  repository.ShareLinkRepository
}

func NewResolver(albums repository.AlbumRepository, links repository.ShareLinkRepository) *Resolver {
	return &Resolver{albums: albums, links: links}
}

// Resolve evaluates the access rules in strict priority order, first
// match wins:
//
//  1. the actor owns the album
//  2. the actor holds an accepted invite for the album
//  3. the presented share link matches, is not expired and its
//     password (if any) checks out
//  4. nothing matched
//
// A pending invite grants nothing. Share links never grant write
// access. actor may be nil for anonymous callers.
func (r *Resolver) Resolve(actor *models.User, album *models.Album, presented Presented) (Level, error) {
	if actor != nil {
		if album.OwnerID == actor.ID {
			return LevelReadWrite, nil
		}

		invite, err := r.albums.GetInvite(album.ID, actor.ID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return LevelNone, err
		}
		if invite != nil && invite.Accepted {
			if invite.WriteAccess {
				return LevelReadWrite, nil
			}
			return LevelRead, nil
		}
	}

	if presented.ShareLinkSlug != "" {
		link, err := r.links.GetBySlug(presented.ShareLinkSlug)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return LevelNone, err
		}
		if link != nil && link.AlbumID == album.ID && !link.IsExpired(time.Now().UTC()) &&
			link.CheckPassword(presented.Password) {
			return LevelRead, nil
		}
	}

	return LevelNone, nil
}
