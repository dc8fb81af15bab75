package openai

import (
	"strings"
)

func buildJobTitlePrompt(jobDescription string) string {
	var b strings.Builder
	b.WriteString("You are an expert at parsing job descriptions. Your task is to extract only the\n")
	b.WriteString("main Job Title from the following job description text.\n")
	b.WriteString("Return your response as a single JSON object with a key \"JobTitle\".\n")
	b.WriteString("**Example Output:**\n")
	b.WriteString("{\"JobTitle\": \"Senior Software Engineer\"}\n")
	b.WriteString("**Job Description Text:**\n")
	b.WriteString(jobDescription)
	return b.String()
}

func buildAnalyzePrompt(resumeText, jobDescription, jobTitle string) string {
	var b strings.Builder
	b.WriteString(`You are an expert HR and recruitment assistant. Your task is to:
1. Extract key candidate information from the provided resume.
2. Compare the candidate's extracted information and the full resume text against
the given job description and job title.
3. Provide a compatibility score and strengths.

Instructions for Output:
Return your entire response as a single JSON object. The JSON object MUST have two
top-level keys: "extracted_info" and "ranking_analysis".

**Schema for "extracted_info":**
{
"Name": "Candidate's full name (string)",
"Email": "Candidate's email address (string)",
"Phone": "Candidate's phone number, including country code if present (string)",
"Location": "Candidate's city, state, and/or country (string)",
"JobTitles": ["List of all job titles held (array of strings)"],
"Companies": ["List of all companies worked at (array of strings)"],
"YearsOfExperience": "Total years of professional experience as a string (e.g., '5+ years', '2015-Present'). Infer if not explicit.",
"Skills": ["List of key technical, soft, and domain-specific skills (array of strings)"],
"Degree": "List of all degrees obtained (array of strings, e.g., 'Master of Science, B.S. Computer Engineering')",
"GraduationYears": ["List of all graduation years or degree date ranges (array of strings, e.g., '2017', '2012-2016')"],
"EducationalInstitutions": ["List of all universities, colleges, or other educational institutions attended (array of strings)"]
}

**Schema for "ranking_analysis":**
{
"CompatibilityScore": "Integer from 0 to 100, where 100 is a perfect match.
Score based on direct relevance and depth of matching skills, experience, and
qualifications from the resume to the job description and job title.
Prioritize hard technical skills and direct experience mentioned in the job
description.
If a candidate is a very strong match, score 90-100. Good match, 70-89. Moderate
match, 50-69. Low match, 0-49.",
"Strengths": ["List of 3 to 5 most relevant and specific strengths from the
resume that clearly align with the job description's requirements. Only list what is
explicitly supported by the resume text."]
}

`)
	b.WriteString("**Job Title:** ")
	b.WriteString(jobTitle)
	b.WriteString("\n**Job Description:**\n")
	b.WriteString(jobDescription)
	b.WriteString("\n**Candidate Resume (RAW TEXT from PDF):**\n")
	b.WriteString(resumeText)
	return b.String()
}
