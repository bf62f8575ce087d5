package services

import (
	"fmt"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildResumeExtractionPrompt creates the prompt that turns raw resume text
// into the structured resume shape.
func (pb *PromptBuilder) BuildResumeExtractionPrompt(resumeText string) string {
	return fmt.Sprintf(`You are an expert resume parser. Extract structured data from the resume below.

RESUME:
%s

Return your response in the following JSON format:
{
  "personal_data": {"name": "", "email": "", "phone": "", "location": "", "linkedin": "", "website": ""},
  "experiences": [{"company": "", "title": "", "start_date": "", "end_date": "", "description": "", "highlights": ["..."]}],
  "education": [{"institution": "", "degree": "", "field": "", "year": ""}],
  "skills": [{"name": "", "category": "", "level": ""}],
  "extracted_keywords": ["keyword1", "keyword2"]
}

Extract every skill and keyword you can find, including tools, frameworks, and methodologies. Use empty strings for missing fields. Return ONLY the JSON object.`, resumeText)
}

// BuildResumeAnalysisPrompt creates the prompt that scores a structured resume
// for ATS compatibility and quality.
func (pb *PromptBuilder) BuildResumeAnalysisPrompt(structuredResume string) string {
	return fmt.Sprintf(`You are an ATS (Applicant Tracking System) expert analyzing a parsed resume.

STRUCTURED RESUME:
%s

Score the resume on the following dimensions (0-100 each):
1. ATS Compatibility - how well the resume would survive automated screening
2. Keyword Density - coverage of role-relevant keywords
3. Structure Quality - organization, completeness of sections
4. Content Relevance - substance and impact of the content

Also provide qualitative feedback.

Return your response in the following JSON format:
{
  "scores": {
    "ats_compatibility": <0-100>,
    "keyword_density": <0-100>,
    "structure_quality": <0-100>,
    "content_relevance": <0-100>,
    "overall_score": <0-100>
  },
  "feedback": {
    "strengths": ["..."],
    "weaknesses": ["..."],
    "suggestions": ["..."],
    "missing_elements": ["..."],
    "ats_recommendations": ["..."]
  }
}

Be objective and specific. Return ONLY the JSON object.`, structuredResume)
}

// BuildJobExtractionPrompt creates the prompt that turns a raw job description
// into the structured job shape.
func (pb *PromptBuilder) BuildJobExtractionPrompt(jobDescription string) string {
	return fmt.Sprintf(`You are an expert job posting parser. Extract structured data from the job description below.

JOB DESCRIPTION:
%s

Return your response in the following JSON format:
{
  "job_title": "",
  "company": "",
  "location": "",
  "employment_type": "",
  "job_summary": "<2-3 sentence summary>",
  "key_responsibilities": ["..."],
  "qualifications": {"required": ["..."], "preferred": ["..."]},
  "compensation": {"salary_min": 0, "salary_max": 0, "currency": "", "benefits": ["..."]},
  "extracted_keywords": ["keyword1", "keyword2"]
}

Use empty strings, empty arrays, or 0 for fields the posting does not mention. Return ONLY the JSON object.`, jobDescription)
}

// BuildJobAnalysisPrompt creates the prompt that scores a structured job
// posting for clarity and match potential.
func (pb *PromptBuilder) BuildJobAnalysisPrompt(structuredJob string) string {
	return fmt.Sprintf(`You are a recruiting analyst assessing a structured job posting.

STRUCTURED JOB:
%s

Score the posting (0-100 each) and classify its seniority:
1. Requirements Clarity - how clearly the requirements are specified
2. Keyword Complexity - how specialized the required skill set is
3. Match Potential - how likely a well-targeted resume can satisfy the requirements

Return your response in the following JSON format:
{
  "requirements_clarity": <0-100>,
  "keyword_complexity": <0-100>,
  "match_potential": <0-100>,
  "difficulty_level": "<entry|mid|senior|lead>"
}

Return ONLY the JSON object.`, structuredJob)
}

// BuildMatchAnalysisPrompt creates the prompt that analyzes how well a resume
// matches a job.
func (pb *PromptBuilder) BuildMatchAnalysisPrompt(resumeData, jobData string) string {
	return fmt.Sprintf(`Perform a comprehensive analysis of how well this resume matches the job requirements.

Analyze the following areas and provide detailed insights:
1. Skills Analysis: Which skills match, which are missing, skill gaps
2. Experience Analysis: Relevant experience, experience gaps, level match
3. Education Analysis: Education requirements vs resume education
4. Keyword Analysis: Keyword overlap, missing keywords, keyword density
5. Gap Analysis: Overall gaps between resume and job requirements

Resume Data:
%s

Job Data:
%s

Provide your analysis as a JSON object with these exact keys (all scores 0-100):
{
  "skills_analysis": {
    "matching_skills": ["skill1", "skill2"],
    "missing_skills": ["skill3", "skill4"],
    "skill_gaps": ["gap1", "gap2"],
    "skill_score": <0-100>
  },
  "experience_analysis": {
    "relevant_experience": ["exp1", "exp2"],
    "experience_gaps": ["gap1", "gap2"],
    "level_match": <0-100>,
    "experience_score": <0-100>
  },
  "education_analysis": {
    "education_match": <0-100>,
    "education_gaps": ["gap1", "gap2"],
    "certification_needs": ["cert1", "cert2"]
  },
  "keyword_analysis": {
    "matching_keywords": ["keyword1", "keyword2"],
    "missing_keywords": ["keyword3", "keyword4"],
    "keyword_density": <0-100>,
    "keyword_score": <0-100>
  },
  "gap_analysis": {
    "major_gaps": ["gap1", "gap2"],
    "minor_gaps": ["gap3", "gap4"],
    "strengths": ["strength1", "strength2"],
    "overall_fit": <0-100>
  }
}

Return ONLY the JSON object.`, resumeData, jobData)
}

// BuildImprovementPrompt creates the prompt that generates ranked improvement
// suggestions from a match analysis.
func (pb *PromptBuilder) BuildImprovementPrompt(matchAnalysis string) string {
	return fmt.Sprintf(`Based on the resume-job match analysis, generate specific, actionable improvement suggestions.

Focus on:
1. Skills that should be added or emphasized
2. Experience descriptions that should be improved
3. Keywords that should be incorporated
4. Education/certifications that should be highlighted
5. Formatting and content structure improvements

Match Analysis:
%s

Provide 5-10 specific improvement suggestions as a JSON array:
[
  {
    "category": "<skills|experience|education|formatting|keywords|content>",
    "priority": "<low|medium|high|critical>",
    "suggestion": "Detailed suggestion text",
    "impact_score": <0-100>,
    "examples": ["example1", "example2"]
  }
]

Use "critical" only for gaps that would disqualify the candidate outright. Return ONLY the JSON array.`, matchAnalysis)
}

// BuildInsightPrompt creates the prompt for the free-text match insight.
func (pb *PromptBuilder) BuildInsightPrompt(jobTitle string, overallScore float64, matchingSkills, missingSkills []string) string {
	return fmt.Sprintf(`You are a career coach summarizing a resume-job compatibility analysis for a %s position.

- Overall match score: %.0f out of 100
- Matching skills: %v
- Missing skills: %v

Write a concise insight (2-4 sentences) covering the candidate's fit, the most important gap to close, and one concrete next step. Return ONLY the insight text, no JSON.`,
		jobTitle, overallScore, matchingSkills, missingSkills)
}
