package extract

// Page scripts. Each is a self-invoking expression so it can be evaluated
// directly and returns a JSON-serializable value.

// scrapeTilesJS collects one entry per forecast tile: city name, icon alt
// text, and the max temperature text.
const scrapeTilesJS = `(() =>
  Array.from(document.querySelectorAll('.weather-forecast-plate')).map(n => ({
    name: n.querySelector('.weather-forecast-name')?.textContent.trim() || '',
    alt:  n.querySelector('.weather-telop-icon img')?.alt || '',
    max:  n.querySelector('.max-temp')?.textContent.trim() || ''
  }))
)()`

// applyTranslationsJS rewrites the displayed city names from a translation
// dictionary (spliced in as %s). Each element caches its original Japanese
// name in a data attribute, so the script is idempotent and can be re-run
// after the page re-renders. Returns the displayed names for verification.
const applyTranslationsJS = `(() => {
  const dict = %s;
  document.querySelectorAll('.weather-forecast-name').forEach(el => {
    const jp = (el.dataset.jpName || el.textContent).trim();
    el.dataset.jpName = jp;
    const ru = dict[jp];
    if (ru && el.textContent.trim() !== ru) {
      el.textContent = ru;
    }
  });
  return Array.from(document.querySelectorAll('.weather-forecast-name')).map(e => e.textContent.trim());
})()`

// mapCSS restyles the injected Russian names: the page's Japanese web font
// renders Cyrillic poorly, and the longer Latin-script names need a tighter
// size to stay inside their tiles.
const mapCSS = `@import url('https://fonts.googleapis.com/css2?family=Inter:wght@600&display=swap');
.weather-forecast-name{
  font-family: 'Inter', 'Roboto', 'Arial', sans-serif !important;
  font-weight: 600 !important;
  letter-spacing: 0 !important;
  text-shadow: 0 0 2px #fff;
}
.weather-forecast-name{
  font-size: 12px !important;
  line-height: 1.1 !important;
}`
