package dto

import "github.com/yukikurage/todo-api/internal/models"

// UserDTO represents a user in API responses
type UserDTO struct {
	ID              uint64  `json:"id"`
	Nickname        string  `json:"nickname"`
	Name            string  `json:"name"`
	ProfileImageURL *string `json:"profile_image_url"`
}

// LoginResponse carries the issued access token
type LoginResponse struct {
	AccessToken string  `json:"access_token"`
	User        UserDTO `json:"user"`
}

// NicknameCheckResponse reports whether a nickname can be used
type NicknameCheckResponse struct {
	Nickname  string `json:"nickname"`
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:              user.ID,
		Nickname:        user.Nickname,
		Name:            user.Name,
		ProfileImageURL: user.ProfileImageURL,
	}
}
