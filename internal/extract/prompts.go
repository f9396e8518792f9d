package extract

// Prompt templates for entity extraction. Each asks for strict JSON and
// forbids invented data; the response is cleaned and repaired once
// before falling back to an empty record.

const personPrompt = `From the resume text below, extract the person strictly as instructed:
1. Extract ONLY the person: their name, current role and a crisp summary. The summary MUST NOT exceed 100 characters.
2. If you cannot find a piece of information, return an empty string. DO NOT create fictitious data. NEVER impute missing values.
3. No position, company, education or skill information should be extracted here.
Return ONLY a JSON object of this shape:
{"name":"Jane Doe","role":"Backend Engineer","summary":"Backend engineer with 8 years of distributed-systems work","location_city":"Berlin"}

Resume text:
%s

JSON:`

const positionsPrompt = `From the resume text below, extract every position the person has held:
1. For each position report the job title, up to 3 alternative phrasings of that title (common synonyms a recruiter might search for), the company name, years spent in the position, and a one-line description.
2. Calculate years from the start and end dates; use 0 if unknown. DO NOT create fictitious data.
3. DO NOT MISS any position.
Return ONLY a JSON object of this shape:
{"positions":[{"job_title":"Software Engineer","alternative_job_titles":["Software Developer","Programmer"],"company_name":"Acme Corp","years":3,"description":"Built the billing pipeline"}]}

Resume text:
%s

JSON:`

const skillsPrompt = `From the resume text below, extract the prominent skills:
1. Focus on technical skills, programming languages, tools, frameworks and domain knowledge.
2. For each skill report its name, up to 3 alternative names (synonyms, abbreviations, common variants), proficiency level and years of experience.
3. Level must be one of "beginner", "intermediate", "expert". If no level is stated, assume expert above 5 years, intermediate for 2-5 years, beginner otherwise.
Return ONLY a JSON object of this shape:
{"skills":[{"name":"Python","alternative_names":["py","python3"],"level":"expert","years":6}]}

Resume text:
%s

JSON:`

const educationPrompt = `From the resume text below, extract every education entry:
1. For each entry report the university, the degree level (one of "bachelor", "master", "phd", "any"), the field of study, up to 3 alternative names for that field, and the graduation year as a number.
2. Extract the field of study separately from the degree. DO NOT MISS any education entry. NEVER impute missing values.
Return ONLY a JSON object of this shape:
{"education":[{"university":"TU Munich","degree":"master","field_of_study":"Computer Science","alternative_fields":["Informatics","Software Engineering"],"graduation_year":2019}]}

Resume text:
%s

JSON:`

const rolePrompt = `Extract the key requirements from the job posting below. Return ONLY a JSON object with these fields:
- job_title: the title of the position
- alternative_titles: up to 3 common alternative phrasings of the title
- degree_requirement: one of "any", "bachelor", "master", "phd"
- fields_of_study: list of {"name", "alternative_fields", "importance"} where importance is one of "required", "preferred", "nice-to-have"
- total_experience_years: required years of overall experience as a number
- required_skills: list of {"name", "alternative_names", "importance", "minimum_years"}
- location_city: the city, empty if fully remote or unstated
- remote_option: true if remote work is possible, false otherwise
- industry_sector: the industry the role belongs to
- role_level: seniority level (e.g. "junior", "senior", "manager")
- keywords: up to 10 searchable keywords characterizing the role
DO NOT create fictitious data; use empty values for anything unstated.

Job posting:
%s

JSON:`
