package web

import (
	"errors"
	"net"
	"net/http"
	"net/url"

	"sporthall/internal/adapters/imaging"
	"sporthall/internal/adapters/remote"
	"sporthall/internal/application/orchestrators"
	"sporthall/internal/domain/adminauth"
	"sporthall/internal/domain/content"
	"sporthall/internal/domain/document"
	"sporthall/internal/domain/feedback"
	"sporthall/internal/domain/gallery"
	"sporthall/internal/domain/media"
	"sporthall/internal/domain/partner"
)

// Notice codes carried in ?ok= after a successful admin action.
const (
	okEdited          = "edited"
	okReloaded        = "reloaded"
	okContactsSaved   = "contacts_saved"
	okSportsSaved     = "sports_saved"
	okPhotoAdded      = "photo_added"
	okPhotoUpdated    = "photo_updated"
	okPhotoDeleted    = "photo_deleted"
	okImageUploaded   = "image_uploaded"
	okDocUploaded     = "doc_uploaded"
	okFeedbackUpdated = "feedback_updated"
	okPasswordChanged = "password_changed"
	okSecretSaved     = "secret_saved"
	okPartnersSaved   = "partners_saved"
	okFeedbackSent    = "feedback_sent"
)

var notices = map[string]string{
	okEdited:          "Изменения внесены в черновик. Не забудьте сохранить.",
	okReloaded:        "Черновик заменён актуальными данными.",
	okContactsSaved:   "Контакты сохранены.",
	okSportsSaved:     "Виды спорта сохранены.",
	okPhotoAdded:      "Фото добавлено в галерею.",
	okPhotoUpdated:    "Фото обновлено.",
	okPhotoDeleted:    "Фото удалено.",
	okImageUploaded:   "Изображение загружено.",
	okDocUploaded:     "Документ загружен.",
	okFeedbackUpdated: "Сообщение обновлено.",
	okPasswordChanged: "Пароль изменён.",
	okSecretSaved:     "Секретный вопрос сохранён.",
	okPartnersSaved:   "Список партнёров сохранён.",
	okFeedbackSent:    "Спасибо! Ваше сообщение отправлено.",
}

// Error codes carried in ?err= and in JSON error bodies.
const (
	errInvalid         = "invalid"
	errBadCredentials  = "bad_credentials"
	errWrongPassword   = "wrong_password"
	errWrongAnswer     = "wrong_answer"
	errPasswordShort   = "password_short"
	errPasswordConfirm = "password_confirm"
	errPasswordSame    = "password_same"
	errSecretEmpty     = "secret_empty"
	errCaptcha         = "captcha"
	errCaptchaExpired  = "captcha_expired"
	errNotImage        = "not_image"
	errTooLarge        = "too_large"
	errDocTooLarge     = "doc_too_large"
	errTooManyPixels   = "too_many_pixels"
	errNotPDF          = "not_pdf"
	errEmptyFile       = "empty_file"
	errPhotoFields     = "photo_fields"
	errNotFound        = "not_found"
	errPartner         = "partner"
	errFeedbackFields  = "feedback_fields"
	errUpstream        = "upstream"
	errInternal        = "internal"
)

var errorTexts = map[string]string{
	errInvalid:         "Некорректные данные.",
	errBadCredentials:  "Неверный логин или пароль.",
	errWrongPassword:   "Текущий пароль указан неверно.",
	errWrongAnswer:     "Неверный ответ на секретный вопрос.",
	errPasswordShort:   "Новый пароль должен содержать не менее 6 символов.",
	errPasswordConfirm: "Пароли не совпадают.",
	errPasswordSame:    "Новый пароль должен отличаться от текущего.",
	errSecretEmpty:     "Укажите вопрос и ответ.",
	errCaptcha:         "Неверный ответ на проверочный вопрос.",
	errCaptchaExpired:  "Проверочный вопрос устарел. Попробуйте ещё раз.",
	errNotImage:        "Можно загружать только изображения.",
	errTooLarge:        "Файл больше 10 МБ.",
	errDocTooLarge:     "Файл больше 20 МБ.",
	errTooManyPixels:   "Слишком большое разрешение изображения.",
	errNotPDF:          "Можно загружать только PDF.",
	errEmptyFile:       "Файл пустой.",
	errPhotoFields:     "Укажите адрес изображения и название.",
	errNotFound:        "Запись не найдена.",
	errPartner:         "Проверьте названия и ссылки партнёров (ссылка должна начинаться с http:// или https://).",
	errFeedbackFields:  "Заполните имя, email и сообщение.",
	errUpstream:        "Сервер недоступен. Попробуйте позже.",
	errInternal:        "Внутренняя ошибка. Попробуйте позже.",
}

func noticeText(code string) string { return notices[code] }

func errorText(code string) string {
	if t, ok := errorTexts[code]; ok {
		return t
	}
	if code == "" {
		return ""
	}
	return errorTexts[errInvalid]
}

// classifyError maps an orchestrator error to an HTTP status and a user-facing code.
// Validation errors are 400, authentication failures 401, hosted store failures 502.
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, orchestrators.ErrInvalidCredentials):
		return http.StatusUnauthorized, errBadCredentials
	case errors.Is(err, orchestrators.ErrCurrentPasswordWrong):
		return http.StatusUnauthorized, errWrongPassword
	case errors.Is(err, orchestrators.ErrWrongSecretAnswer):
		return http.StatusUnauthorized, errWrongAnswer

	case errors.Is(err, adminauth.ErrPasswordTooShort):
		return http.StatusBadRequest, errPasswordShort
	case errors.Is(err, adminauth.ErrPasswordMismatch):
		return http.StatusBadRequest, errPasswordConfirm
	case errors.Is(err, adminauth.ErrPasswordUnchanged):
		return http.StatusBadRequest, errPasswordSame
	case errors.Is(err, adminauth.ErrEmptySecret):
		return http.StatusBadRequest, errSecretEmpty

	case errors.Is(err, orchestrators.ErrCaptchaMismatch):
		return http.StatusBadRequest, errCaptcha
	case errors.Is(err, orchestrators.ErrCaptchaExpired):
		return http.StatusBadRequest, errCaptchaExpired
	case errors.Is(err, feedback.ErrEmptyName), errors.Is(err, feedback.ErrEmptyEmail),
		errors.Is(err, feedback.ErrInvalidEmail), errors.Is(err, feedback.ErrEmptyMessage),
		errors.Is(err, feedback.ErrTooLong):
		return http.StatusBadRequest, errFeedbackFields

	case errors.Is(err, media.ErrNotImage), errors.Is(err, imaging.ErrUndecodable):
		return http.StatusBadRequest, errNotImage
	case errors.Is(err, media.ErrFileTooLarge):
		return http.StatusBadRequest, errTooLarge
	case errors.Is(err, media.ErrTooManyPixels):
		return http.StatusBadRequest, errTooManyPixels
	case errors.Is(err, document.ErrFileTooLarge):
		return http.StatusBadRequest, errDocTooLarge
	case errors.Is(err, document.ErrNotPDF):
		return http.StatusBadRequest, errNotPDF
	case errors.Is(err, media.ErrEmptyFile), errors.Is(err, document.ErrEmptyFile):
		return http.StatusBadRequest, errEmptyFile

	case errors.Is(err, gallery.ErrEmptyURL), errors.Is(err, gallery.ErrEmptyTitle):
		return http.StatusBadRequest, errPhotoFields
	case errors.Is(err, orchestrators.ErrPhotoNotFound), errors.Is(err, document.ErrUnknownDocType):
		return http.StatusNotFound, errNotFound
	case errors.Is(err, partner.ErrEmptyName), errors.Is(err, partner.ErrInvalidURL):
		return http.StatusBadRequest, errPartner

	case errors.Is(err, content.ErrUnknownField), errors.Is(err, content.ErrIndexOutOfRange),
		errors.Is(err, content.ErrDuplicateSport), errors.Is(err, content.ErrEmptySportID),
		errors.Is(err, orchestrators.ErrUnknownEdit), errors.Is(err, orchestrators.ErrInvalidFeedbackID),
		errors.Is(err, feedback.ErrUnknownOperation), errors.Is(err, gallery.ErrEmptyID):
		return http.StatusBadRequest, errInvalid
	}

	var apiErr *remote.APIError
	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &apiErr) || errors.Is(err, remote.ErrDecode) || errors.As(err, &netErr) || errors.As(err, &urlErr) {
		return http.StatusBadGateway, errUpstream
	}
	return http.StatusInternalServerError, errInternal
}

// errorResponse is the JSON body for a failed panel call.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeErrorJSON(w http.ResponseWriter, err error) {
	status, code := classifyError(err)
	writeJSON(w, status, errorResponse{Error: code, Message: errorText(code)})
}
