package constants

const (
	ROLE_STANDARD  = "standard"
	ROLE_ADMIN     = "admin"
	ROLE_SUPERUSER = "superuser"
)

const (
	ERROR_INTERNAL_ERROR       = "Internal server error"
	ERROR_PARSE_DATA_TO_LOCALS = "Failed to read validated input"
	DATA_INPUT_IS_NOT_NUMBER   = "Input data is not a number"

	MISSING_LOGIN_INPUT = "Email and password are required"
	INVALID_EMAIL       = "Email does not exist"
	INVALID_PASSWORD    = "Password does not match email"
	LOGIN_REQUIRED      = "Please login to continue."
	FORBIDDEN_REQUEST   = "Forbidden request"
)

// Mức XP cộng cho mỗi lần mua hàng thành công
const PURCHASE_XP_REWARD = 5

// Số ngày giữ lại refund đã Completed trước khi xoá
const REFUND_RETENTION_DAYS = 14
