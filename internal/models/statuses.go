package models

// UserRole - роль пользователя на платформе
type UserRole string

const (
	UserRoleStudent      UserRole = "student"
	UserRoleProfessional UserRole = "professional"
)

// OppositeRole возвращает роль противоположной стороны подбора
func OppositeRole(role UserRole) UserRole {
	if role == UserRoleStudent {
		return UserRoleProfessional
	}
	return UserRoleStudent
}

// MediaType - тип загруженного медиа
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
	MediaTypeFile  MediaType = "file"
)

// VerificationStatus - статус заявки на верификацию
type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusApproved VerificationStatus = "approved"
	VerificationStatusRejected VerificationStatus = "rejected"
)

// VerificationAction - действие модератора над заявкой
const (
	VerificationActionApprove = "approve"
	VerificationActionReject  = "reject"
)
