package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ignatzorin/freelance-market/internal/models"
)

// Константы валидации
const (
	MinNameLength        = 2
	MaxNameLength        = 120
	MinJobTitleLength    = 3
	MaxJobTitleLength    = 200
	MinDescriptionLength = 10
	MaxDescriptionLength = 5000
	MinProposalLength    = 10
	MaxProposalLength    = 2000
	MaxBioLength         = 1000
	MaxSkillLength       = 50
	MaxSkillsCount       = 50
	MaxBudget            = 100000000.0
	MaxDeliveryDays      = 365
	MaxPortfolioLinkLen  = 255
)

var emailLocalRegex = regexp.MustCompile(`^[a-z0-9._+-]+$`)
var emailDomainRegex = regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)

// ValidateLength проверяет длину строки в рунах.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email обязателен")
	}

	email = strings.ToLower(strings.TrimSpace(email))

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("некорректный формат email")
	}

	local, domain := parts[0], parts[1]
	if len(local) == 0 || len(local) > 64 {
		return fmt.Errorf("локальная часть email должна быть от 1 до 64 символов")
	}
	if len(domain) == 0 || len(domain) > 255 {
		return fmt.Errorf("доменная часть email должна быть от 1 до 255 символов")
	}
	if !emailLocalRegex.MatchString(local) {
		return fmt.Errorf("локальная часть email содержит недопустимые символы")
	}
	if !emailDomainRegex.MatchString(domain) {
		return fmt.Errorf("доменная часть email имеет некорректный формат")
	}

	return nil
}

// ValidateName проверяет отображаемое имя пользователя.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("имя обязательно")
	}
	return ValidateLength("имя", strings.TrimSpace(name), MinNameLength, MaxNameLength)
}

// ValidateRole проверяет роль при регистрации.
func ValidateRole(role string) error {
	if _, ok := models.ValidRoles[role]; !ok {
		return fmt.Errorf("роль должна быть client или freelancer")
	}
	return nil
}

// ValidateJobTitle проверяет заголовок задания.
func ValidateJobTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("заголовок задания обязателен")
	}
	return ValidateLength("заголовок задания", strings.TrimSpace(title), MinJobTitleLength, MaxJobTitleLength)
}

// ValidateJobDescription проверяет описание задания.
func ValidateJobDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("описание задания обязательно")
	}
	return ValidateLength("описание задания", strings.TrimSpace(description), MinDescriptionLength, MaxDescriptionLength)
}

// ValidateBudget проверяет бюджет задания.
func ValidateBudget(budget float64) error {
	if budget <= 0 {
		return fmt.Errorf("бюджет должен быть положительным")
	}
	if budget > MaxBudget {
		return fmt.Errorf("бюджет не может превышать %.0f", MaxBudget)
	}
	return nil
}

// ValidateCategory проверяет категорию по фиксированному набору.
func ValidateCategory(category string) error {
	if _, ok := models.ValidJobCategories[category]; !ok {
		return fmt.Errorf("категория %q не входит в допустимый набор", category)
	}
	return nil
}

// ValidateDeadline проверяет, что срок задания в будущем.
func ValidateDeadline(deadline time.Time, now time.Time) error {
	if !deadline.After(now) {
		return fmt.Errorf("срок выполнения должен быть в будущем")
	}
	return nil
}

// ValidateBidAmount проверяет сумму отклика.
func ValidateBidAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("сумма отклика должна быть положительной")
	}
	if amount > MaxBudget {
		return fmt.Errorf("сумма отклика не может превышать %.0f", MaxBudget)
	}
	return nil
}

// ValidateDeliveryDays проверяет срок выполнения в днях.
func ValidateDeliveryDays(days int) error {
	if days <= 0 {
		return fmt.Errorf("срок выполнения в днях должен быть положительным")
	}
	if days > MaxDeliveryDays {
		return fmt.Errorf("срок выполнения не может превышать %d дней", MaxDeliveryDays)
	}
	return nil
}

// ValidateProposal проверяет текст отклика.
func ValidateProposal(proposal string) error {
	if strings.TrimSpace(proposal) == "" {
		return fmt.Errorf("текст отклика обязателен")
	}
	return ValidateLength("текст отклика", strings.TrimSpace(proposal), MinProposalLength, MaxProposalLength)
}

// ValidateRating проверяет оценку отзыва.
func ValidateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("оценка должна быть от 1 до 5")
	}
	return nil
}

// ValidateBio проверяет описание профиля.
func ValidateBio(bio string) error {
	return ValidateLength("описание профиля", bio, 0, MaxBioLength)
}

// ValidateSkills проверяет список навыков.
func ValidateSkills(skills []string) error {
	if len(skills) > MaxSkillsCount {
		return fmt.Errorf("слишком много навыков, максимум %d", MaxSkillsCount)
	}
	for _, skill := range skills {
		if strings.TrimSpace(skill) == "" {
			return fmt.Errorf("навык не может быть пустым")
		}
		if err := ValidateLength("навык", skill, 1, MaxSkillLength); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePortfolioLink проверяет ссылку на портфолио.
func ValidatePortfolioLink(link string) error {
	if link == "" {
		return nil
	}
	if len(link) > MaxPortfolioLinkLen {
		return fmt.Errorf("ссылка на портфолио слишком длинная")
	}
	parsed, err := url.Parse(link)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("ссылка на портфолио должна быть валидным http(s) URL")
	}
	return nil
}
