package crawler

import (
	"topcv-crawler/internal/scrapers/topcv"
)

// JobRecord is one output row, the union of a stub, its detail page and
// its employer profile. absent values are nil.
type JobRecord struct {
	CrawlDate     string
	SearchKeyword string
	SearchSlug    string

	Title       string
	DetailTitle *string
	JobUrl      string

	Company           *string
	CompanyNameFull   *string
	CompanyUrl        *string
	CompanyUrlFromJob *string

	SalaryList       *string
	DetailSalary     *string
	AddressList      *string
	DetailLocation   *string
	ExpList          *string
	DetailExperience *string

	Deadline         *string
	Tags             *string
	WorkingAddresses *string
	WorkingTimes     *string

	DescMota     *string
	DescYeucau   *string
	DescQuyenloi *string

	CompanyWebsite     *string
	CompanySize        *string
	CompanyIndustry    *string
	CompanyAddress     *string
	CompanyDescription *string
}

// Columns is the stable column order of every tabular output.
var Columns = []string{
	"crawl_date",
	"search_keyword",
	"search_slug",
	"title",
	"detail_title",
	"job_url",
	"company",
	"company_name_full",
	"company_url",
	"company_url_from_job",
	"salary_list",
	"detail_salary",
	"address_list",
	"detail_location",
	"exp_list",
	"detail_experience",
	"deadline",
	"tags",
	"working_addresses",
	"working_times",
	"desc_mota",
	"desc_yeucau",
	"desc_quyenloi",
	"company_website",
	"company_size",
	"company_industry",
	"company_address",
	"company_description",
}

// Row returns the record's values in Columns order.
func (r JobRecord) Row() []*string {
	return []*string{
		&r.CrawlDate,
		&r.SearchKeyword,
		&r.SearchSlug,
		&r.Title,
		r.DetailTitle,
		&r.JobUrl,
		r.Company,
		r.CompanyNameFull,
		r.CompanyUrl,
		r.CompanyUrlFromJob,
		r.SalaryList,
		r.DetailSalary,
		r.AddressList,
		r.DetailLocation,
		r.ExpList,
		r.DetailExperience,
		r.Deadline,
		r.Tags,
		r.WorkingAddresses,
		r.WorkingTimes,
		r.DescMota,
		r.DescYeucau,
		r.DescQuyenloi,
		r.CompanyWebsite,
		r.CompanySize,
		r.CompanyIndustry,
		r.CompanyAddress,
		r.CompanyDescription,
	}
}

// JobPath is the record's identity.
func (r JobRecord) JobPath() string {
	return topcv.JobPath(r.JobUrl)
}

// resolveCompanyUrl prefers the employer link of the detail page over the
// one shown in the listing.
func resolveCompanyUrl(stub topcv.JobStub, detail topcv.JobDetail) *string {
	if detail.CompanyUrl != nil {
		return detail.CompanyUrl
	}
	return stub.CompanyUrl
}

func newRecord(stub topcv.JobStub, detail topcv.JobDetail, company topcv.CompanyProfile) JobRecord {
	return JobRecord{
		Title:              stub.Title,
		DetailTitle:        detail.Title,
		JobUrl:             stub.JobUrl,
		Company:            stub.Company,
		CompanyNameFull:    company.Name,
		CompanyUrl:         resolveCompanyUrl(stub, detail),
		CompanyUrlFromJob:  detail.CompanyUrl,
		SalaryList:         stub.Salary,
		DetailSalary:       detail.Salary,
		AddressList:        stub.Location,
		DetailLocation:     detail.Location,
		ExpList:            stub.Experience,
		DetailExperience:   detail.Experience,
		Deadline:           detail.Deadline,
		Tags:               detail.Tags,
		WorkingAddresses:   detail.WorkingAddresses,
		WorkingTimes:       detail.WorkingTimes,
		DescMota:           detail.Description,
		DescYeucau:         detail.Requirements,
		DescQuyenloi:       detail.Benefits,
		CompanyWebsite:     company.Website,
		CompanySize:        company.Size,
		CompanyIndustry:    company.Industry,
		CompanyAddress:     company.Address,
		CompanyDescription: company.Description,
	}
}
