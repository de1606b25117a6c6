package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/maxaizer/recruit-agent/internal/domain/models"
	"github.com/maxaizer/recruit-agent/internal/logger"
	gocache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
	"io"
	"strings"
	"time"
)

type aiClient interface {
	GenerateResponse(ctx context.Context, request string) (string, error)
}

// ScorerInstructions is the system instruction the oracle model is configured with.
var ScorerInstructions = []string{
	"You are an expert technical recruiter who analyzes resumes.",
	"Analyze the resume against the provided job requirements.",
	"Be lenient with AI/ML candidates who show strong potential.",
	"Consider project experience as valid experience.",
	"Value hands-on experience with key technologies.",
	"Return a JSON response with selection decision and feedback.",
}

type oracleVerdict struct {
	Selected        *bool    `json:"selected" validate:"required"`
	Feedback        *string  `json:"feedback" validate:"required"`
	MatchingSkills  []string `json:"matching_skills"`
	MissingSkills   []string `json:"missing_skills"`
	ExperienceLevel string   `json:"experience_level" validate:"required,oneof=junior mid senior"`
}

type AIService struct {
	aiClient aiClient
	cache    *gocache.Cache
	validate *validator.Validate
}

func NewAIService(aiClient aiClient) *AIService {
	return &AIService{
		aiClient: aiClient,
		cache:    gocache.New(time.Hour, 2*time.Hour),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// ScoreResume asks the oracle to judge text against the role's requirements.
// Identical role and text pairs are answered from cache for an hour.
func (a *AIService) ScoreResume(ctx context.Context, role models.Role, text string) (models.Verdict, error) {
	cacheID := createVerdictCacheID(role, text)
	if cached, found := a.cache.Get(cacheID); found {
		log.Debugf("verdict for role %s served from cache", role)
		return cloneVerdict(cached.(models.Verdict)), nil
	}

	response, err := a.aiClient.GenerateResponse(ctx, scoreRequest(role, text))
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeOracleApi).
			Errorf("oracle request failed for role %s: %v", role, err)
		return models.Verdict{}, err
	}

	verdict, err := a.parseVerdict(response)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeOracleApi).
			Errorf("oracle returned unusable response \"%v\": %v", response, err)
		return models.Verdict{}, err
	}

	a.cache.Set(cacheID, cloneVerdict(verdict), gocache.DefaultExpiration)
	return verdict, nil
}

func (a *AIService) parseVerdict(response string) (models.Verdict, error) {
	decoder := json.NewDecoder(strings.NewReader(strings.TrimSpace(response)))
	decoder.DisallowUnknownFields()

	var raw oracleVerdict
	if err := decoder.Decode(&raw); err != nil {
		return models.Verdict{}, fmt.Errorf("%w: %v", models.ErrOracleResponseInvalid, err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return models.Verdict{}, fmt.Errorf("%w: trailing data after verdict", models.ErrOracleResponseInvalid)
	}

	raw.ExperienceLevel = strings.ToLower(strings.TrimSpace(raw.ExperienceLevel))
	if err := a.validate.Struct(raw); err != nil {
		return models.Verdict{}, fmt.Errorf("%w: %v", models.ErrOracleResponseInvalid, err)
	}

	return models.Verdict{
		Selected:        *raw.Selected,
		Feedback:        strings.TrimSpace(*raw.Feedback),
		MatchingSkills:  nonNil(raw.MatchingSkills),
		MissingSkills:   nonNil(raw.MissingSkills),
		ExperienceLevel: models.ExperienceLevel(raw.ExperienceLevel),
	}, nil
}

func scoreRequest(role models.Role, text string) string {
	return fmt.Sprintf(`Please analyze this resume against the following requirements and provide your response in valid JSON format:

Role Requirements:
%s

Resume Text:
%s

Your response must be a valid JSON object like this:
{
    "selected": true/false,
    "feedback": "Detailed feedback explaining the decision",
    "matching_skills": ["skill1", "skill2"],
    "missing_skills": ["skill3", "skill4"],
    "experience_level": "junior/mid/senior"
}

Evaluation criteria:
1. Match at least 70%% of required skills
2. Consider both theoretical knowledge and practical experience
3. Value project experience and real-world applications
4. Consider transferable skills from similar technologies
5. Look for evidence of continuous learning and adaptability

Important: Return ONLY the JSON object without any other fields, markdown formatting or backticks.`,
		role.Requirements(), text)
}

func createVerdictCacheID(role models.Role, text string) string {
	textHash := sha256.Sum256([]byte(text))
	return string(role) + ":" + hex.EncodeToString(textHash[:])
}

func cloneVerdict(v models.Verdict) models.Verdict {
	v.MatchingSkills = append([]string{}, v.MatchingSkills...)
	v.MissingSkills = append([]string{}, v.MissingSkills...)
	return v
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
