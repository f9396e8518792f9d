package db

// SchemaSQL contains the database schema initialization SQL.
//
// Node tables use the normalized natural key (or the derived storage id
// for candidate/role) as the record id, so UPSERT on the record id is
// the merge-by-key primitive. Every relation table carries a computed
// unique_key with a UNIQUE index; together with the record-id merge
// this makes both node and edge creation idempotent per
// (source, relation table, target).
const SchemaSQL = `
    -- ==========================================================================
    -- CANDIDATE (one row per ingested CV, id derived from storage name)
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS candidate SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS name ON candidate TYPE string;
    DEFINE FIELD IF NOT EXISTS job_title ON candidate TYPE string;
    DEFINE FIELD IF NOT EXISTS description ON candidate TYPE string;
    DEFINE FIELD IF NOT EXISTS last_field_of_study ON candidate TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS last_degree ON candidate TYPE string DEFAULT 'any'
        ASSERT $value IN ['any', 'bachelor', 'master', 'phd'];
    DEFINE FIELD IF NOT EXISTS total_experience_years ON candidate TYPE float DEFAULT 0.0;
    DEFINE FIELD IF NOT EXISTS cv_text ON candidate TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS cv_file_name ON candidate TYPE string;
    DEFINE FIELD IF NOT EXISTS original_name ON candidate TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS cv_source_path ON candidate TYPE string;
    DEFINE FIELD IF NOT EXISTS location_city ON candidate TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS extracted ON candidate TYPE bool DEFAULT false;
    DEFINE FIELD IF NOT EXISTS uploaded_at ON candidate TYPE datetime DEFAULT time::now();
    DEFINE FIELD IF NOT EXISTS updated_at ON candidate TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS candidate_file_name ON candidate FIELDS cv_file_name;

    -- ==========================================================================
    -- ROLE (one row per job posting)
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS role SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS job_title ON role TYPE string;
    DEFINE FIELD IF NOT EXISTS degree_requirement ON role TYPE string DEFAULT 'any'
        ASSERT $value IN ['any', 'bachelor', 'master', 'phd'];
    DEFINE FIELD IF NOT EXISTS total_experience_years ON role TYPE float DEFAULT 0.0;
    DEFINE FIELD IF NOT EXISTS location_city ON role TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS remote_option ON role TYPE bool DEFAULT false;
    DEFINE FIELD IF NOT EXISTS industry_sector ON role TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS role_level ON role TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS created_at ON role TYPE datetime DEFAULT time::now();
    DEFINE FIELD IF NOT EXISTS updated_at ON role TYPE datetime DEFAULT time::now();

    -- ==========================================================================
    -- SHARED CANONICAL NODES (merged by normalized name across records)
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS skill SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS name ON skill TYPE string;

    DEFINE TABLE IF NOT EXISTS company SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS name ON company TYPE string;

    DEFINE TABLE IF NOT EXISTS field_of_study SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS name ON field_of_study TYPE string;

    DEFINE TABLE IF NOT EXISTS job_title SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS name ON job_title TYPE string;

    DEFINE TABLE IF NOT EXISTS keyword SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS name ON keyword TYPE string;

    DEFINE TABLE IF NOT EXISTS city SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS name ON city TYPE string;

    -- ==========================================================================
    -- CANDIDATE RELATIONS
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS has_skill TYPE RELATION IN candidate OUT skill SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS level ON has_skill TYPE string DEFAULT 'beginner'
        ASSERT $value IN ['beginner', 'intermediate', 'expert'];
    DEFINE FIELD IF NOT EXISTS years ON has_skill TYPE float DEFAULT 0.0;
    DEFINE FIELD IF NOT EXISTS unique_key ON has_skill VALUE <string>string::concat(<string>in, <string>out);
    DEFINE INDEX IF NOT EXISTS has_skill_unique ON has_skill FIELDS unique_key UNIQUE;

    DEFINE TABLE IF NOT EXISTS has_experience TYPE RELATION IN candidate OUT job_title SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS company ON has_experience TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS years ON has_experience TYPE float DEFAULT 0.0;
    DEFINE FIELD IF NOT EXISTS description ON has_experience TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS unique_key ON has_experience VALUE <string>string::concat(<string>in, <string>out);
    DEFINE INDEX IF NOT EXISTS has_experience_unique ON has_experience FIELDS unique_key UNIQUE;

    DEFINE TABLE IF NOT EXISTS worked_at TYPE RELATION IN candidate OUT company SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS job_title ON worked_at TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS years ON worked_at TYPE float DEFAULT 0.0;
    DEFINE FIELD IF NOT EXISTS unique_key ON worked_at VALUE <string>string::concat(<string>in, <string>out);
    DEFINE INDEX IF NOT EXISTS worked_at_unique ON worked_at FIELDS unique_key UNIQUE;

    DEFINE TABLE IF NOT EXISTS has_education TYPE RELATION IN candidate OUT field_of_study SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS university ON has_education TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS degree ON has_education TYPE string DEFAULT 'any'
        ASSERT $value IN ['any', 'bachelor', 'master', 'phd'];
    DEFINE FIELD IF NOT EXISTS graduation_year ON has_education TYPE option<int>;
    DEFINE FIELD IF NOT EXISTS unique_key ON has_education VALUE <string>string::concat(<string>in, <string>out);
    DEFINE INDEX IF NOT EXISTS has_education_unique ON has_education FIELDS unique_key UNIQUE;

    DEFINE TABLE IF NOT EXISTS lives_in TYPE RELATION IN candidate OUT city SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS unique_key ON lives_in VALUE <string>string::concat(<string>in, <string>out);
    DEFINE INDEX IF NOT EXISTS lives_in_unique ON lives_in FIELDS unique_key UNIQUE;

    -- ==========================================================================
    -- ALTERNATE-NAME FAN-OUT (alternate -> canonical, one direction)
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS alternative_of TYPE RELATION
        IN skill | job_title | field_of_study
        OUT skill | job_title | field_of_study SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS unique_key ON alternative_of VALUE <string>string::concat(<string>in, <string>out);
    DEFINE INDEX IF NOT EXISTS alternative_of_unique ON alternative_of FIELDS unique_key UNIQUE;

    -- ==========================================================================
    -- ROLE RELATIONS
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS requires_skill TYPE RELATION IN role OUT skill SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS importance ON requires_skill TYPE string DEFAULT 'preferred'
        ASSERT $value IN ['required', 'preferred', 'nice-to-have'];
    DEFINE FIELD IF NOT EXISTS minimum_years ON requires_skill TYPE float DEFAULT 0.0;
    DEFINE FIELD IF NOT EXISTS unique_key ON requires_skill VALUE <string>string::concat(<string>in, <string>out);
    DEFINE INDEX IF NOT EXISTS requires_skill_unique ON requires_skill FIELDS unique_key UNIQUE;

    DEFINE TABLE IF NOT EXISTS requires_field TYPE RELATION IN role OUT field_of_study SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS importance ON requires_field TYPE string DEFAULT 'preferred'
        ASSERT $value IN ['required', 'preferred', 'nice-to-have'];
    DEFINE FIELD IF NOT EXISTS unique_key ON requires_field VALUE <string>string::concat(<string>in, <string>out);
    DEFINE INDEX IF NOT EXISTS requires_field_unique ON requires_field FIELDS unique_key UNIQUE;

    DEFINE TABLE IF NOT EXISTS has_title TYPE RELATION IN role OUT job_title SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS unique_key ON has_title VALUE <string>string::concat(<string>in, <string>out);
    DEFINE INDEX IF NOT EXISTS has_title_unique ON has_title FIELDS unique_key UNIQUE;

    DEFINE TABLE IF NOT EXISTS has_keyword TYPE RELATION IN role OUT keyword SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS unique_key ON has_keyword VALUE <string>string::concat(<string>in, <string>out);
    DEFINE INDEX IF NOT EXISTS has_keyword_unique ON has_keyword FIELDS unique_key UNIQUE;

    DEFINE TABLE IF NOT EXISTS located_in TYPE RELATION IN role OUT city SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS unique_key ON located_in VALUE <string>string::concat(<string>in, <string>out);
    DEFINE INDEX IF NOT EXISTS located_in_unique ON located_in FIELDS unique_key UNIQUE;
`
