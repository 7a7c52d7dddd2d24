package topcv

import "strings"

// Labels are the site's visible headings the detail and company pages are
// keyed on. they change with the site's copy, so they are configuration.
type Labels struct {
	Salary     string `json:"salary"`
	Location   string `json:"location"`
	Experience string `json:"experience"`
	Deadline   string `json:"deadline"`

	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	Benefits     string `json:"benefits"`

	WorkingAddresses string `json:"working_addresses"`
	WorkingTimes     string `json:"working_times"`

	// company overview rows, a row belongs to the first field with a
	// keyword contained in its label.
	CompanyWebsite  []string `json:"company_website"`
	CompanySize     []string `json:"company_size"`
	CompanyIndustry []string `json:"company_industry"`
	CompanyAddress  []string `json:"company_address"`
}

func DefaultLabels() Labels {
	return Labels{
		Salary:           "Mức lương",
		Location:         "Địa điểm",
		Experience:       "Kinh nghiệm",
		Deadline:         "Hạn nộp",
		Description:      "Mô tả công việc",
		Requirements:     "Yêu cầu ứng viên",
		Benefits:         "Quyền lợi",
		WorkingAddresses: "Địa điểm làm việc",
		WorkingTimes:     "Thời gian làm việc",
		CompanyWebsite:   []string{"website", "trang web"},
		CompanySize:      []string{"quy mô", "size", "nhân sự"},
		CompanyIndustry:  []string{"lĩnh vực", "industry", "ngành"},
		CompanyAddress:   []string{"địa chỉ", "address"},
	}
}

type companyField struct {
	name     string
	keywords []string
}

// companyFields returns the overview fields in classification priority.
func (l Labels) companyFields() []companyField {
	lower := func(keywords []string) []string {
		out := make([]string, len(keywords))
		for i, k := range keywords {
			out[i] = strings.ToLower(strings.TrimSpace(k))
		}
		return out
	}
	return []companyField{
		{name: "website", keywords: lower(l.CompanyWebsite)},
		{name: "size", keywords: lower(l.CompanySize)},
		{name: "industry", keywords: lower(l.CompanyIndustry)},
		{name: "address", keywords: lower(l.CompanyAddress)},
	}
}
