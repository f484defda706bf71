package favoriteerrors

import "github.com/karasai/karasai-be/src/server/internal/errors/api"

const (
	BadFavoriteDataCode = api.ErrorCode("bad_favorite_data")
)
