package schema

import "strings"

// Section identifies one of the seven logical groupings a field belongs to.
// Grouping is a presentation concern only; storage is a single flat row.
type Section string

const (
	SectionDetails          Section = "Details"
	SectionLinkedIn         Section = "LinkedIn"
	SectionBBB              Section = "BBB"
	SectionGoogleBusiness   Section = "Google Business"
	SectionPPP              Section = "PPP"
	SectionSecretaryOfState Section = "Secretary of State"
	SectionSource           Section = "Source"
)

// Sections lists the groupings in display order.
var Sections = []Section{
	SectionDetails,
	SectionLinkedIn,
	SectionBBB,
	SectionGoogleBusiness,
	SectionPPP,
	SectionSecretaryOfState,
	SectionSource,
}

// Field pairs a curated display label with its storage column key.
type Field struct {
	Section Section `json:"section"`
	Label   string  `json:"label"`
	Key     string  `json:"key"`
}

// Fields is the canonical ordered list of company data fields. The curated
// label of every entry satisfies ToKey(Label) == Key, so labels and keys are
// interchangeable on any input path.
var Fields = []Field{
	// Details
	{Section: SectionDetails, Label: "Account Name", Key: "account_name"},
	{Section: SectionDetails, Label: "Website", Key: "website"},
	{Section: SectionDetails, Label: "Annual Revenue", Key: "annual_revenue"},
	{Section: SectionDetails, Label: "Email", Key: "email"},
	{Section: SectionDetails, Label: "Contact on Website", Key: "contact_on_website"},
	{Section: SectionDetails, Label: "Title", Key: "title"},
	{Section: SectionDetails, Label: "Website Company Name", Key: "website_company_name"},
	{Section: SectionDetails, Label: "Website Company Name Abbreviated", Key: "website_company_name_abbreviated"},
	{Section: SectionDetails, Label: "Website Company Abbreviated", Key: "website_company_abbreviated"},
	{Section: SectionDetails, Label: "Website Address", Key: "website_address"},
	{Section: SectionDetails, Label: "Website Street", Key: "website_street"},
	{Section: SectionDetails, Label: "Website City", Key: "website_city"},
	{Section: SectionDetails, Label: "Website State", Key: "website_state"},
	{Section: SectionDetails, Label: "Website Zip Code", Key: "website_zip_code"},
	{Section: SectionDetails, Label: "Website Country", Key: "website_country"},
	{Section: SectionDetails, Label: "Website: Full Company MSA", Key: "website_full_company_msa"},
	{Section: SectionDetails, Label: "Website: Company MSA", Key: "website_company_msa"},
	{Section: SectionDetails, Label: "Website: Region", Key: "website_region"},
	{Section: SectionDetails, Label: "Website Office Phone", Key: "website_office_phone"},
	{Section: SectionDetails, Label: "Website Contacts", Key: "website_contacts"},
	{Section: SectionDetails, Label: "Website Locations", Key: "website_locations"},
	{Section: SectionDetails, Label: "Website Year Founded", Key: "website_year_founded"},
	{Section: SectionDetails, Label: "Website Employees", Key: "website_employees"},
	{Section: SectionDetails, Label: "Website Designations", Key: "website_designations"},
	{Section: SectionDetails, Label: "Website: Could Not Access", Key: "website_could_not_access"},
	{Section: SectionDetails, Label: "Website: Notes", Key: "website_notes"},
	// LinkedIn
	{Section: SectionLinkedIn, Label: "LinkedIn Possible (1)", Key: "linkedin_possible_1"},
	{Section: SectionLinkedIn, Label: "LinkedIn Possible (2)", Key: "linkedin_possible_2"},
	{Section: SectionLinkedIn, Label: "LinkedIn (Url)", Key: "linkedin_url"},
	{Section: SectionLinkedIn, Label: "LinkedIn Company Name", Key: "linkedin_company_name"},
	{Section: SectionLinkedIn, Label: "LinkedIn Overview", Key: "linkedin_overview"},
	{Section: SectionLinkedIn, Label: "LinkedIn Followers", Key: "linkedin_followers"},
	{Section: SectionLinkedIn, Label: "LinkedIn Phone", Key: "linkedin_phone"},
	{Section: SectionLinkedIn, Label: "LinkedIn Industry", Key: "linkedin_industry"},
	{Section: SectionLinkedIn, Label: "LinkedIn Employee Estimate", Key: "linkedin_employee_estimate"},
	{Section: SectionLinkedIn, Label: "LinkedIn Members", Key: "linkedin_members"},
	{Section: SectionLinkedIn, Label: "LinkedIn Headquarters", Key: "linkedin_headquarters"},
	{Section: SectionLinkedIn, Label: "LinkedIn Founded Year", Key: "linkedin_founded_year"},
	{Section: SectionLinkedIn, Label: "LinkedIn Specialties", Key: "linkedin_specialties"},
	{Section: SectionLinkedIn, Label: "LinkedIn Contacts", Key: "linkedin_contacts"},
	{Section: SectionLinkedIn, Label: "LinkedIn Locations", Key: "linkedin_locations"},
	{Section: SectionLinkedIn, Label: "LinkedIn Primary Location", Key: "linkedin_primary_location"},
	{Section: SectionLinkedIn, Label: "LinkedIn Street", Key: "linkedin_street"},
	{Section: SectionLinkedIn, Label: "LinkedIn City", Key: "linkedin_city"},
	{Section: SectionLinkedIn, Label: "LinkedIn State", Key: "linkedin_state"},
	{Section: SectionLinkedIn, Label: "LinkedIn Zip Code", Key: "linkedin_zip_code"},
	{Section: SectionLinkedIn, Label: "LinkedIn Country", Key: "linkedin_country"},
	{Section: SectionLinkedIn, Label: "LinkedIn: Full Company MSA", Key: "linkedin_full_company_msa"},
	{Section: SectionLinkedIn, Label: "LinkedIn: Company MSA", Key: "linkedin_company_msa"},
	{Section: SectionLinkedIn, Label: "LinkedIn: Region", Key: "linkedin_region"},
	{Section: SectionLinkedIn, Label: "LinkedIn: Notes", Key: "linkedin_notes"},
	{Section: SectionLinkedIn, Label: "LinkedIn Unclaimed Page", Key: "linkedin_unclaimed_page"},
	{Section: SectionLinkedIn, Label: "LinkedIn: Could Not Access", Key: "linkedin_could_not_access"},
	// BBB
	{Section: SectionBBB, Label: "BBB Link (Url)", Key: "bbb_link_url"},
	{Section: SectionBBB, Label: "BBB (Url)", Key: "bbb_url"},
	{Section: SectionBBB, Label: "BBB Company Name", Key: "bbb_company_name"},
	{Section: SectionBBB, Label: "BBB Business Started", Key: "bbb_business_started"},
	{Section: SectionBBB, Label: "BBB Type of Entity", Key: "bbb_type_of_entity"},
	{Section: SectionBBB, Label: "BBB Alternate Names", Key: "bbb_alternate_names"},
	{Section: SectionBBB, Label: "BBB Address", Key: "bbb_address"},
	{Section: SectionBBB, Label: "BBB Street", Key: "bbb_street"},
	{Section: SectionBBB, Label: "BBB City", Key: "bbb_city"},
	{Section: SectionBBB, Label: "BBB State", Key: "bbb_state"},
	{Section: SectionBBB, Label: "BBB Zip Code", Key: "bbb_zip_code"},
	{Section: SectionBBB, Label: "BBB Country", Key: "bbb_country"},
	{Section: SectionBBB, Label: "BBB: Full Company MSA", Key: "bbb_full_company_msa"},
	{Section: SectionBBB, Label: "BBB: Company MSA", Key: "bbb_company_msa"},
	{Section: SectionBBB, Label: "BBB: Region", Key: "bbb_region"},
	{Section: SectionBBB, Label: "BBB Customer Contacts", Key: "bbb_customer_contacts"},
	{Section: SectionBBB, Label: "BBB: Notes", Key: "bbb_notes"},
	{Section: SectionBBB, Label: "BBB Accredited", Key: "bbb_accredited"},
	{Section: SectionBBB, Label: "BBB: Could Not Access", Key: "bbb_could_not_access"},
	// Google Business
	{Section: SectionGoogleBusiness, Label: "Google Business Page (Url)", Key: "google_business_page_url"},
	{Section: SectionGoogleBusiness, Label: "Google Company Name", Key: "google_company_name"},
	{Section: SectionGoogleBusiness, Label: "Google Reviews", Key: "google_reviews"},
	{Section: SectionGoogleBusiness, Label: "Google Rating", Key: "google_rating"},
	{Section: SectionGoogleBusiness, Label: "Google Address", Key: "google_address"},
	{Section: SectionGoogleBusiness, Label: "Google Business Street", Key: "google_business_street"},
	{Section: SectionGoogleBusiness, Label: "Google Business City", Key: "google_business_city"},
	{Section: SectionGoogleBusiness, Label: "Google Business State", Key: "google_business_state"},
	{Section: SectionGoogleBusiness, Label: "Google Business Zip Code", Key: "google_business_zip_code"},
	{Section: SectionGoogleBusiness, Label: "Google Business Country", Key: "google_business_country"},
	{Section: SectionGoogleBusiness, Label: "Google Business: Full Company MSA", Key: "google_business_full_company_msa"},
	{Section: SectionGoogleBusiness, Label: "Google Business: Company MSA", Key: "google_business_company_msa"},
	{Section: SectionGoogleBusiness, Label: "Google Business: Region", Key: "google_business_region"},
	{Section: SectionGoogleBusiness, Label: "Google Phone", Key: "google_phone"},
	{Section: SectionGoogleBusiness, Label: "Google Business: Notes", Key: "google_business_notes"},
	{Section: SectionGoogleBusiness, Label: "Google: Could Not Access", Key: "google_could_not_access"},
	// PPP
	{Section: SectionPPP, Label: "FederalPay PPP Link", Key: "federalpay_ppp_link"},
	{Section: SectionPPP, Label: "FederalPay PPP (Url)", Key: "federalpay_ppp_url"},
	{Section: SectionPPP, Label: "PPP Company Name", Key: "ppp_company_name"},
	{Section: SectionPPP, Label: "PPP Jobs Retained", Key: "ppp_jobs_retained"},
	{Section: SectionPPP, Label: "PPP Total Loan Size", Key: "ppp_total_loan_size"},
	{Section: SectionPPP, Label: "PPP Loan Size (1)", Key: "ppp_loan_size_1"},
	{Section: SectionPPP, Label: "PPP Loan Payroll Amount (1)", Key: "ppp_loan_payroll_amount_1"},
	{Section: SectionPPP, Label: "PPP Loan Size (2)", Key: "ppp_loan_size_2"},
	{Section: SectionPPP, Label: "PPP Loan Payroll Amount (2)", Key: "ppp_loan_payroll_amount_2"},
	{Section: SectionPPP, Label: "PPP Address", Key: "ppp_address"},
	{Section: SectionPPP, Label: "PPP Street", Key: "ppp_street"},
	{Section: SectionPPP, Label: "PPP City", Key: "ppp_city"},
	{Section: SectionPPP, Label: "PPP State", Key: "ppp_state"},
	{Section: SectionPPP, Label: "PPP Zip Code", Key: "ppp_zip_code"},
	{Section: SectionPPP, Label: "PPP Country", Key: "ppp_country"},
	{Section: SectionPPP, Label: "PPP: Full Company MSA", Key: "ppp_full_company_msa"},
	{Section: SectionPPP, Label: "PPP: Company MSA", Key: "ppp_company_msa"},
	{Section: SectionPPP, Label: "PPP: Region", Key: "ppp_region"},
	{Section: SectionPPP, Label: "PPP Business Demographics", Key: "ppp_business_demographics"},
	{Section: SectionPPP, Label: "PPP NAICS Code", Key: "ppp_naics_code"},
	{Section: SectionPPP, Label: "PPP Business Owner Demographics", Key: "ppp_business_owner_demographics"},
	{Section: SectionPPP, Label: "PPP: Notes", Key: "ppp_notes"},
	{Section: SectionPPP, Label: "PPP: Could Not Access", Key: "ppp_could_not_access"},
	// Secretary of State
	{Section: SectionSecretaryOfState, Label: "SoS Company Name", Key: "sos_company_name"},
	{Section: SectionSecretaryOfState, Label: "SoS Fictitious Names", Key: "sos_fictitious_names"},
	{Section: SectionSecretaryOfState, Label: "SoS Filing Type", Key: "sos_filing_type"},
	{Section: SectionSecretaryOfState, Label: "SoS Agent Address", Key: "sos_agent_address"},
	{Section: SectionSecretaryOfState, Label: "SoS Agent Street", Key: "sos_agent_street"},
	{Section: SectionSecretaryOfState, Label: "SoS Agent City", Key: "sos_agent_city"},
	{Section: SectionSecretaryOfState, Label: "SoS Agent State", Key: "sos_agent_state"},
	{Section: SectionSecretaryOfState, Label: "SoS Agent Zip Code", Key: "sos_agent_zip_code"},
	{Section: SectionSecretaryOfState, Label: "SoS Agent Country", Key: "sos_agent_country"},
	{Section: SectionSecretaryOfState, Label: "SoS Agent: Full Company MSA", Key: "sos_agent_full_company_msa"},
	{Section: SectionSecretaryOfState, Label: "SoS Agent: Company MSA", Key: "sos_agent_company_msa"},
	{Section: SectionSecretaryOfState, Label: "SoS Agent: Region", Key: "sos_agent_region"},
	{Section: SectionSecretaryOfState, Label: "SoS Principal Address", Key: "sos_principal_address"},
	{Section: SectionSecretaryOfState, Label: "SoS Principal Street", Key: "sos_principal_street"},
	{Section: SectionSecretaryOfState, Label: "SoS Principal City", Key: "sos_principal_city"},
	{Section: SectionSecretaryOfState, Label: "SoS Principal State", Key: "sos_principal_state"},
	{Section: SectionSecretaryOfState, Label: "SoS Principal Zip Code", Key: "sos_principal_zip_code"},
	{Section: SectionSecretaryOfState, Label: "SoS Principal Country", Key: "sos_principal_country"},
	{Section: SectionSecretaryOfState, Label: "SoS Principal: Full Company MSA", Key: "sos_principal_full_company_msa"},
	{Section: SectionSecretaryOfState, Label: "SoS Principal: Company MSA", Key: "sos_principal_company_msa"},
	{Section: SectionSecretaryOfState, Label: "SoS Principal: Region", Key: "sos_principal_region"},
	{Section: SectionSecretaryOfState, Label: "SoS Registered Agent", Key: "sos_registered_agent"},
	{Section: SectionSecretaryOfState, Label: "SoS Officers", Key: "sos_officers"},
	{Section: SectionSecretaryOfState, Label: "SoS Year Founded", Key: "sos_year_founded"},
	{Section: SectionSecretaryOfState, Label: "SoS: Notes", Key: "sos_notes"},
	{Section: SectionSecretaryOfState, Label: "SoS: Could Not Access", Key: "sos_could_not_access"},
	// Source
	{Section: SectionSource, Label: "Location (Primary)", Key: "location_primary"},
	{Section: SectionSource, Label: "Source (Primary)", Key: "source_primary"},
	{Section: SectionSource, Label: "Location (Secondary)", Key: "location_secondary"},
	{Section: SectionSource, Label: "Source (Secondary)", Key: "source_secondary"},
	{Section: SectionSource, Label: "Location (Tertiary)", Key: "location_tertiary"},
	{Section: SectionSource, Label: "Source (Tertiary)", Key: "source_tertiary"},
	{Section: SectionSource, Label: "Location (Fourth)", Key: "location_fourth"},
	{Section: SectionSource, Label: "Source (Fourth)", Key: "source_fourth"},
}

var (
	fieldByKey       = map[string]Field{}
	keyByLabel       = map[string]string{}
	keyByLabelFolded = map[string]string{}
)

func init() {
	for _, f := range Fields {
		fieldByKey[f.Key] = f
		keyByLabel[f.Label] = f.Key
		keyByLabelFolded[strings.ToLower(f.Label)] = f.Key
	}
}

// IsKey reports whether key is a storage column the registry knows.
func IsKey(key string) bool {
	_, ok := fieldByKey[key]
	return ok
}

// Keys returns all storage keys in registry order.
func Keys() []string {
	keys := make([]string, len(Fields))
	for i, f := range Fields {
		keys[i] = f.Key
	}
	return keys
}

// SectionFields returns the fields of a single section in order.
func SectionFields(section Section) []Field {
	var out []Field
	for _, f := range Fields {
		if f.Section == section {
			out = append(out, f)
		}
	}
	return out
}
