package topcv

const listingFixture = `
<html><body>
<div class="job-list-search-result">
	<div class="job-item-search-result">
		<h3 class="title"><a href="/viec-lam/data-analyst/1001.html?ta_source=JobSearchList"><span>  Data
			Analyst </span></a></h3>
		<a class="company" href="/cong-ty/acme/42.html"><span class="company-name">ACME   Corp</span></a>
		<label class="title-salary">15 - 25 triệu</label>
		<label class="address"><span class="city-text">Hà Nội</span></label>
		<label class="exp"><span>2 năm</span></label>
	</div>
	<div class="job-item-search-result">
		<h3 class="title"><a>No link</a></h3>
	</div>
	<div class="job-item-search-result">
		<h3 class="title"><a href="https://www.topcv.vn/brand/beta/tuyen-dung/bi-2002.html">BI Engineer</a></h3>
		<label class="title-salary">Thoả thuận</label>
	</div>
	<div class="job-item-search-result">
		<h3 class="title"><a href="/viec-lam/data-analyst/1001.html">Data Analyst</a></h3>
	</div>
</div>
</body></html>`

const detailFixture = `
<html><body>
<h1 class="job-detail__info--title">Data Analyst (SQL, Python)</h1>
<div class="job-detail__info">
	<div class="job-detail__info--section">
		<div class="job-detail__info--section-content">
			<div class="job-detail__info--section-content-title">Mức lương</div>
			<div class="job-detail__info--section-content-value">15 - 25 triệu</div>
		</div>
	</div>
	<div class="job-detail__info--section">
		<div class="job-detail__info--section-content">
			<div class="job-detail__info--section-content-title">ĐỊA ĐIỂM</div>
			<div class="job-detail__info--section-content-value">Hà Nội</div>
		</div>
	</div>
	<div class="job-detail__info--section">
		<div class="job-detail__info--section-content">
			<div class="job-detail__info--section-content-title">Kinh nghiệm tối thiểu</div>
			<div class="job-detail__info--section-content-value">2 năm</div>
		</div>
	</div>
</div>
<div class="job-detail__info--deadline">Hạn nộp hồ sơ: 05/8/2024</div>
<div class="job-tags"><a class="item">SQL</a><a class="item">Python</a></div>
<div class="job-description">
	<div class="job-description__item">
		<h3>Mô tả công việc</h3>
		<div class="job-description__item--content"><ul><li>Phân tích dữ liệu</li><li>Báo cáo</li></ul></div>
	</div>
	<div class="job-description__item">
		<h3>Yêu cầu ứng viên</h3>
		<div class="job-description__item--content"><p>Thành thạo SQL</p></div>
	</div>
	<div class="job-description__item">
		<h3>Địa điểm làm việc</h3>
		<div class="job-description__item--content">
			<div>- Hà Nội: Tòa nhà A, Cầu Giấy</div>
			<div>- Hồ Chí Minh: Quận 1</div>
		</div>
	</div>
	<div class="job-description__item">
		<h3>Thời gian làm việc</h3>
		<div class="job-description__item--content"></div>
	</div>
</div>
<div class="job-detail__company">
	<a class="company" href="/cong-ty/acme-vietnam/42.html">ACME</a>
</div>
</body></html>`

const companyFixture = `
<html><head>
	<title>Công ty ACME Việt Nam | TopCV.vn</title>
	<meta property="og:title" content="ACME | TopCV">
</head><body>
<div class="company-overview">
	<ul>
		<li><strong>Website:</strong> https://acme.vn</li>
		<li><b>Quy mô</b> - 100-499 nhân viên</li>
		<li>Lĩnh vực: Phần mềm</li>
		<li>Ngành nghề: Tài chính</li>
		<li>Địa chỉ：Tầng 5, 1 Láng Hạ, Hà Nội</li>
		<li>Mã số thuế: 0101</li>
		<li>Không có nhãn</li>
		<li><strong>Website</strong></li>
	</ul>
</div>
<div class="company-description"><p>ACME là   công ty</p><p>phần mềm.</p></div>
</body></html>`
